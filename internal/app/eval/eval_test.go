package eval

import (
	"errors"
	"testing"

	"github.com/zhenglier/eo/internal/domain"
)

func chainGraph() *domain.Graph {
	return domain.NewGraph(
		[]int64{10, 10, 10},
		[]int64{5, 5, 5},
		[][]int32{{}, {0}, {1}},
	)
}

func TestMakespan_Scenarios(t *testing.T) {
	tests := []struct {
		name      string
		graph     *domain.Graph
		cardCount int
		schedule  domain.Schedule
		want      int64
	}{
		{
			name:      "S1 chain one card",
			graph:     chainGraph(),
			cardCount: 1,
			schedule:  domain.Schedule{{0, 0}, {1, 0}, {2, 0}},
			want:      30,
		},
		{
			name: "S2 chain two cards forced split",
			graph: domain.NewGraph(
				[]int64{10, 10, 10},
				[]int64{3, 3, 3},
				[][]int32{{}, {0}, {1}},
			),
			cardCount: 2,
			schedule:  domain.Schedule{{0, 0}, {1, 1}, {2, 0}},
			want:      36,
		},
		{
			name: "S3 fan-out same card",
			graph: domain.NewGraph(
				[]int64{5, 5, 5},
				[]int64{100, 0, 0},
				[][]int32{{}, {0}, {0}},
			),
			cardCount: 1,
			schedule:  domain.Schedule{{0, 0}, {1, 0}, {2, 0}},
			want:      15,
		},
		{
			name: "S4 fan-out two cards",
			graph: domain.NewGraph(
				[]int64{5, 5, 5},
				[]int64{100, 0, 0},
				[][]int32{{}, {0}, {0}},
			),
			cardCount: 2,
			schedule:  domain.Schedule{{0, 0}, {1, 1}, {2, 1}},
			want:      115,
		},
		{
			name: "S5 diamond",
			graph: domain.NewGraph(
				[]int64{10, 10, 10, 10},
				[]int64{5, 5, 5, 5},
				[][]int32{{}, {0}, {0}, {1, 2}},
			),
			cardCount: 2,
			schedule:  domain.Schedule{{0, 0}, {1, 0}, {2, 1}, {3, 0}},
			want:      40,
		},
		{
			name:      "empty graph empty schedule",
			graph:     domain.NewGraph(nil, nil, nil),
			cardCount: 1,
			schedule:  nil,
			want:      0,
		},
		{
			name:      "card count zero yields zero",
			graph:     chainGraph(),
			cardCount: 0,
			schedule:  domain.Schedule{{0, 0}, {1, 0}, {2, 0}},
			want:      0,
		},
		{
			name:      "card count negative yields zero",
			graph:     chainGraph(),
			cardCount: -3,
			schedule:  domain.Schedule{{0, 0}, {1, 0}, {2, 0}},
			want:      0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Makespan(tt.schedule, tt.graph, tt.cardCount)
			if got != tt.want {
				t.Errorf("Makespan() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMakespan_SingleOperator(t *testing.T) {
	g := domain.NewGraph([]int64{7}, []int64{0}, [][]int32{{}})
	got := Makespan(domain.Schedule{{0, 0}}, g, 1)
	if got != 7 {
		t.Errorf("Makespan() = %d, want 7 (its own exec_cost)", got)
	}
}

func TestMakespan_PermissiveOnUnknownOpID(t *testing.T) {
	g := chainGraph()
	// entry referencing op id 99, which doesn't exist — should be skipped,
	// not cause a panic or error.
	schedule := domain.Schedule{{0, 0}, {1, 0}, {2, 0}, {99, 0}}
	got := Makespan(schedule, g, 1)
	if got != 30 {
		t.Errorf("Makespan() = %d, want 30 (unknown entries skipped)", got)
	}
}

func TestValidateAndMakespan_Valid(t *testing.T) {
	g := chainGraph()
	got, err := ValidateAndMakespan(domain.Schedule{{0, 0}, {1, 0}, {2, 0}}, g, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 30 {
		t.Errorf("makespan = %d, want 30", got)
	}
}

func TestValidateAndMakespan_S6_MissingProducer(t *testing.T) {
	g := domain.NewGraph([]int64{10, 10}, []int64{5, 5}, [][]int32{{}, {0}})
	_, err := ValidateAndMakespan(domain.Schedule{{1, 0}, {0, 0}}, g, 1)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, domain.ErrInvalidSchedule) || !errors.Is(err, domain.ErrProducerNotReady) {
		t.Errorf("error = %v, want wrapping ErrInvalidSchedule and ErrProducerNotReady", err)
	}
}

func TestValidateAndMakespan_WrongLength(t *testing.T) {
	g := chainGraph()
	_, err := ValidateAndMakespan(domain.Schedule{{0, 0}, {1, 0}}, g, 1)
	if !errors.Is(err, domain.ErrScheduleWrongLength) {
		t.Errorf("error = %v, want ErrScheduleWrongLength", err)
	}
}

func TestValidateAndMakespan_DuplicateOpID(t *testing.T) {
	g := chainGraph()
	_, err := ValidateAndMakespan(domain.Schedule{{0, 0}, {0, 0}, {2, 0}}, g, 1)
	if !errors.Is(err, domain.ErrDuplicateOpID) {
		t.Errorf("error = %v, want ErrDuplicateOpID", err)
	}
}

func TestValidateAndMakespan_OutOfRangeIDs(t *testing.T) {
	g := chainGraph()
	if _, err := ValidateAndMakespan(domain.Schedule{{5, 0}, {1, 0}, {2, 0}}, g, 1); !errors.Is(err, domain.ErrOpIDOutOfRange) {
		t.Errorf("error = %v, want ErrOpIDOutOfRange", err)
	}
	if _, err := ValidateAndMakespan(domain.Schedule{{0, 9}, {1, 0}, {2, 0}}, g, 1); !errors.Is(err, domain.ErrCardIDOutOfRange) {
		t.Errorf("error = %v, want ErrCardIDOutOfRange", err)
	}
}

func TestValidateAndMakespan_InvalidCardCount(t *testing.T) {
	g := chainGraph()
	if _, err := ValidateAndMakespan(domain.Schedule{{0, 0}, {1, 0}, {2, 0}}, g, 0); !errors.Is(err, domain.ErrInvalidCardCount) {
		t.Errorf("error = %v, want ErrInvalidCardCount", err)
	}
}

// Property: same-card pair is free — if all of a producer's consumers
// share its card, no transfer cost is ever charged.
func TestProperty_SameCardPairIsFree(t *testing.T) {
	g := domain.NewGraph([]int64{5, 5}, []int64{1000, 0}, [][]int32{{}, {0}})
	got := Makespan(domain.Schedule{{0, 0}, {1, 0}}, g, 1)
	if got != 10 {
		t.Errorf("makespan = %d, want 10 (no transfer charged)", got)
	}
}

// Property: transfer-once — two consumers of the same producer on the same
// destination card only pay the transfer cost once.
func TestProperty_TransferChargedOnce(t *testing.T) {
	g := domain.NewGraph(
		[]int64{5, 5, 5},
		[]int64{50, 0, 0},
		[][]int32{{}, {0}, {0}},
	)
	got := Makespan(domain.Schedule{{0, 0}, {1, 1}, {2, 1}}, g, 2)
	// op0 finishes at 5 on card0. op1 on card1: transfer 50 -> finish 60.
	// op2 on card1: op0 now resident on card1, no transfer -> finish 65.
	if got != 65 {
		t.Errorf("makespan = %d, want 65", got)
	}
}
