package server

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/admpub/speedy-charts/pkg/config"
)

type ErrResponse struct {
	Err            error `json:"-"`
	HTTPStatusCode int   `json:"-"`

	StatusText string `json:"status"`
	ErrorText  string `json:"error,omitempty"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func newErrResponse(err error, status int) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: status,
		StatusText:     http.StatusText(status),
		ErrorText:      err.Error(),
	}
}

func ErrInvalidRequest(err error) render.Renderer {
	return newErrResponse(err, http.StatusBadRequest)
}

func ErrNotFound(err error) render.Renderer {
	return newErrResponse(err, http.StatusNotFound)
}

func ErrTooLarge(err error) render.Renderer {
	return newErrResponse(err, http.StatusRequestEntityTooLarge)
}

func ErrInternalServerError(err error) render.Renderer {
	return newErrResponse(err, http.StatusInternalServerError)
}

type ChartItem struct {
	Index   int    `json:"index"`
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Dataset string `json:"dataset,omitempty"`
	Title   string `json:"title,omitempty"`
}

type ChartList struct {
	Backend string      `json:"backend"`
	Charts  []ChartItem `json:"charts"`
}

func (l *ChartList) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

func newChartList(cfg *config.Config) *ChartList {
	list := &ChartList{Backend: cfg.Backend, Charts: make([]ChartItem, len(cfg.Charts))}
	for i, ch := range cfg.Charts {
		list.Charts[i] = ChartItem{
			Index:   i,
			Name:    ch.Name,
			Kind:    ch.Kind,
			Dataset: ch.Dataset,
			Title:   ch.Style.Title,
		}
	}
	return list
}
