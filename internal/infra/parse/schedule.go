package parse

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/zhenglier/eo/internal/domain"
)

// ParseSchedule reads a schedule file for the validate collaborator: one
// "op_id card_id" pair per line, in dispatch order.
func ParseSchedule(r io.Reader) (domain.Schedule, error) {
	scanner := bufio.NewScanner(r)
	var schedule domain.Schedule

	for {
		line, ok := nextNonEmptyLine(scanner)
		if !ok {
			break
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: expected \"op_id card_id\", got %q", domain.ErrInvalidInput, line)
		}
		opID, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("%w: invalid op_id %q: %v", domain.ErrInvalidInput, fields[0], err)
		}
		cardID, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%w: invalid card_id %q: %v", domain.ErrInvalidInput, fields[1], err)
		}
		schedule = append(schedule, domain.Entry{OpID: int32(opID), CardID: int32(cardID)})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return schedule, nil
}
