package server

import (
	"bytes"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/admpub/log"
	"github.com/coscms/tables"
	"github.com/go-chi/render"
	"github.com/go-echarts/go-echarts/v2/components"

	"github.com/admpub/speedy-charts/pkg/config"
	"github.com/admpub/speedy-charts/pkg/surface"
	"github.com/admpub/speedy-charts/pkg/surface/echarts"
)

// handleIndex renders every chart of the job on one page, followed by the
// colour keys of the charts coloured by category.
func handleIndex(w http.ResponseWriter, r *http.Request, cfg *config.Config) {
	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)
	page.SetPageTitle(`speedy charts`)
	var keys []string
	for i, ch := range cfg.Charts {
		s, err := plot(cfg, i, echarts.Name, echarts.FormatHTML)
		if err != nil {
			log.Errorf(`chart %s: %v`, ch.Name, err)
			render.Render(w, r, ErrInvalidRequest(fmt.Errorf(`chart %s: %w`, ch.Name, err)))
			return
		}
		chart, err := s.(*echarts.Surface).Build()
		if err != nil {
			render.Render(w, r, ErrInternalServerError(err))
			return
		}
		page.AddCharts(chart)
		if entries := s.Legend().Entries; len(entries) > 0 {
			keys = append(keys, colourKey(ch.Name, entries))
		}
	}
	buf := bytes.NewBuffer(nil)
	if err := page.Render(buf); err != nil {
		render.Render(w, r, ErrInternalServerError(err))
		return
	}
	w.Header().Set(`Content-Type`, contentTypes[echarts.FormatHTML])
	if len(keys) == 0 {
		w.Write(buf.Bytes())
		return
	}
	w.Write(bodyAndLastDiv.ReplaceAll(buf.Bytes(), []byte(tableStyle+`<div class="container"><div class="item" style="width:900px">`+strings.Join(keys, ``)+`</div></div> </div></body></html>`)))
}

func colourKey(name string, entries []surface.LegendEntry) string {
	table := tables.New()
	table.SetCaptionContent(name)
	table.Head.AddRow(new(tables.Row).AddCell(tables.NewCell(`Category`), tables.NewCell(`Colour`)))
	for _, e := range entries {
		table.Body.AddRow(new(tables.Row).AddCell(tables.NewCell(e.Label), tables.NewCell(e.Colour.Hex())))
	}
	return string(table.Render())
}

var bodyAndLastDiv = regexp.MustCompile(`</div>\s*</body>\s*</html>\s*$`)
var tableStyle = `<style>
table {border-collapse: collapse;background-color: #f2f2f2;width: 100%;margin: 0 auto 16px;box-shadow: 1px 1px 5px rgba(0,0,0,0.3);}
table caption{color: #516b91; font-weight: bold}
th, td {border: 1px solid #ccc;text-align: left;padding: 8px;}
th {background-color: #516b91;color: white;}
tr:nth-child(odd) {background-color: #f2f2f2;}
tr:nth-child(even) {background-color: #fff;}
</style>`
