// Package parse reads the line-oriented graph input format (spec §6): a
// card count followed by one operator per line, each referencing only
// earlier operators.
package parse

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/zhenglier/eo/internal/domain"
)

// Graph bundles the parsed operator graph with the card count that
// accompanied it in the input file.
type Graph struct {
	Graph     *domain.Graph
	CardCount int
}

// Parse reads the input format from r:
//
//	line 1:   card_count
//	line i+1: id input_count input_id_1 ... input_id_k exec_cost transfer_cost
//
// id must equal the current 0-based operator index, input_count must be
// between 0 and the number of prior operators inclusive, every input_id
// must be strictly less than id, and exec_cost/transfer_cost must be
// non-negative. Any violation is fatal and wrapped in
// domain.ErrInvalidInput.
func Parse(r io.Reader) (Graph, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	line, ok := nextNonEmptyLine(scanner)
	if !ok {
		return Graph{}, fmt.Errorf("%w: empty input, expected card_count on line 1", domain.ErrInvalidInput)
	}
	cardCount, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return Graph{}, fmt.Errorf("%w: line 1: invalid card_count %q: %v", domain.ErrInvalidInput, line, err)
	}

	var execCost, transferCost []int64
	var inputs [][]int32
	id := 0

	for {
		line, ok = nextNonEmptyLine(scanner)
		if !ok {
			break
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return Graph{}, fmt.Errorf("%w: operator %d: expected at least 3 fields, got %d", domain.ErrInvalidInput, id, len(fields))
		}

		gotID, err := strconv.Atoi(fields[0])
		if err != nil {
			return Graph{}, fmt.Errorf("%w: operator %d: invalid id %q: %v", domain.ErrInvalidInput, id, fields[0], err)
		}
		if gotID != id {
			return Graph{}, fmt.Errorf("%w: operator %d: id field %d does not match its 0-based position", domain.ErrInvalidInput, id, gotID)
		}

		inputCount, err := strconv.Atoi(fields[1])
		if err != nil {
			return Graph{}, fmt.Errorf("%w: operator %d: invalid input_count %q: %v", domain.ErrInvalidInput, id, fields[1], err)
		}
		if inputCount < 0 || inputCount > id {
			return Graph{}, fmt.Errorf("%w: operator %d: input_count %d out of range [0, %d]", domain.ErrInvalidInput, id, inputCount, id)
		}

		wantFields := 2 + inputCount + 2
		if len(fields) != wantFields {
			return Graph{}, fmt.Errorf("%w: operator %d: expected %d fields, got %d", domain.ErrInvalidInput, id, wantFields, len(fields))
		}

		ops := make([]int32, inputCount)
		for i := 0; i < inputCount; i++ {
			v, err := strconv.Atoi(fields[2+i])
			if err != nil {
				return Graph{}, fmt.Errorf("%w: operator %d: invalid input_id %q: %v", domain.ErrInvalidInput, id, fields[2+i], err)
			}
			if v < 0 || v >= id {
				return Graph{}, fmt.Errorf("%w: operator %d: input_id %d must be < %d", domain.ErrInvalidInput, id, v, id)
			}
			ops[i] = int32(v)
		}

		exec, err := strconv.ParseInt(fields[2+inputCount], 10, 64)
		if err != nil || exec < 0 {
			return Graph{}, fmt.Errorf("%w: operator %d: invalid exec_cost %q", domain.ErrInvalidInput, id, fields[2+inputCount])
		}
		transfer, err := strconv.ParseInt(fields[3+inputCount], 10, 64)
		if err != nil || transfer < 0 {
			return Graph{}, fmt.Errorf("%w: operator %d: invalid transfer_cost %q", domain.ErrInvalidInput, id, fields[3+inputCount])
		}

		execCost = append(execCost, exec)
		transferCost = append(transferCost, transfer)
		inputs = append(inputs, ops)
		id++
	}

	if err := scanner.Err(); err != nil {
		return Graph{}, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	return Graph{
		Graph:     domain.NewGraph(execCost, transferCost, inputs),
		CardCount: cardCount,
	}, nil
}

func nextNonEmptyLine(scanner *bufio.Scanner) (string, bool) {
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		return line, true
	}
	return "", false
}
