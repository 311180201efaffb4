package query

import (
	"strings"

	"github.com/fekuna/omnipos-admin-console/internal/model"
)

type Mode int

const (
	ModeList Mode = iota
	ModeSearch
	ModeFilter
)

func (m Mode) String() string {
	switch m {
	case ModeSearch:
		return "search"
	case ModeFilter:
		return "filter"
	default:
		return "list"
	}
}

// Input holds the independently optional listing controls. Zero values mean unset.
type Input struct {
	Term        string
	CategoryID  int64
	StockStatus model.StockStatus
}

// Plan is the single request a listing view should issue.
type Plan struct {
	Mode        Mode
	Term        string
	CategoryID  int64
	StockStatus model.StockStatus
}

func (p Plan) HasCategory() bool { return p.CategoryID != 0 }

func (p Plan) HasStockStatus() bool { return p.StockStatus != "" }

// Compose picks the request mode. Search and filter are exclusive: a
// non-blank term always wins and the filters are dropped from the plan.
func Compose(in Input) Plan {
	if term := strings.TrimSpace(in.Term); term != "" {
		return Plan{Mode: ModeSearch, Term: term}
	}
	if in.CategoryID != 0 || in.StockStatus != "" {
		return Plan{
			Mode:        ModeFilter,
			CategoryID:  in.CategoryID,
			StockStatus: in.StockStatus,
		}
	}
	return Plan{Mode: ModeList}
}

// ComposeSearch is Compose for views that only offer a search box.
func ComposeSearch(term string) Plan {
	return Compose(Input{Term: term})
}
