package ranking

import (
	"fmt"

	"github.com/jack-barr3tt/gbr-priority/src/common/types"
)

const (
	DefaultPreviewRows   = 5
	DefaultHighlightRows = 3
)

// View is the result of one filter and rank pass over a session dataset.
type View struct {
	Ranked       types.Dataset
	Preview      types.Dataset
	Highlight    types.Dataset
	Types        []string
	UnknownTypes []string
}

type ViewOptions struct {
	Filter        FilterOptions
	PreviewRows   int
	HighlightRows int
}

// Prepare filters and ranks ds and cuts the preview and highlight
// projections from the ranked order.
func Prepare(ds types.Dataset, opts ViewOptions) (View, error) {
	filtered, err := Filter(ds, opts.Filter)
	if err != nil {
		return View{}, err
	}
	ranked := Rank(filtered)

	preview := opts.PreviewRows
	if preview <= 0 {
		preview = DefaultPreviewRows
	}
	highlight := opts.HighlightRows
	if highlight <= 0 {
		highlight = DefaultHighlightRows
	}

	v := View{
		Ranked:       ranked,
		Preview:      TopN(ranked, preview),
		Highlight:    TopN(ranked, highlight),
		Types:        DistinctTypes(ds),
		UnknownTypes: []string{},
	}
	if opts.Filter.Types != nil {
		v.UnknownTypes = UnknownTypes(ds, opts.Filter.Types)
	}
	return v, nil
}

// Headline renders a ranked train as "🚄 <name> | Urgency: <x.x>". A missing
// urgency renders as 0.0.
func Headline(row types.Record) string {
	urgency, _ := row.Number(types.ColUrgencyScore)
	return fmt.Sprintf("🚄 %s | Urgency: %.1f", row.Text(types.ColTrainName), urgency)
}

// Headlines renders every row of ds with Headline.
func Headlines(ds types.Dataset) []string {
	out := make([]string, 0, ds.Len())
	for _, row := range ds.Rows {
		out = append(out, Headline(row))
	}
	return out
}
