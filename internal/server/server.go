package server

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/admpub/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/admpub/speedy-charts/pkg/config"
	"github.com/admpub/speedy-charts/pkg/surface"
	"github.com/admpub/speedy-charts/pkg/surface/echarts"
	"github.com/admpub/speedy-charts/pkg/surface/gonum"
)

// MaxJobSize caps the body of a posted job.
const MaxJobSize = 4 << 20

var contentTypes = map[string]string{
	echarts.FormatHTML: `text/html; charset=utf-8`,
	echarts.FormatJSON: `application/json; charset=utf-8`,
	gonum.FormatPNG:    `image/png`,
	gonum.FormatSVG:    `image/svg+xml`,
	gonum.FormatPDF:    `application/pdf`,
}

// Handler serves the charts of one job.
func Handler(cfg *config.Config) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get(`/`, func(w http.ResponseWriter, r *http.Request) {
		handleIndex(w, r, cfg)
	})
	r.Get(`/charts/{index}`, func(w http.ResponseWriter, r *http.Request) {
		handleChart(w, r, cfg)
	})
	r.Route(`/api`, func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Get(`/charts`, func(w http.ResponseWriter, r *http.Request) {
			render.Render(w, r, newChartList(cfg))
		})
		r.Get(`/charts/{index}`, func(w http.ResponseWriter, r *http.Request) {
			index, err := chartIndex(r, cfg)
			if err != nil {
				render.Render(w, r, ErrNotFound(err))
				return
			}
			writeOption(w, r, cfg, index)
		})
		r.Post(`/render`, handleRender)
	})
	return r
}

func Start(cfg *config.Config, addr string) error {
	log.Infof(`serving %d charts on http://%s`, len(cfg.Charts), addr)
	return http.ListenAndServe(addr, Handler(cfg))
}

func chartIndex(r *http.Request, cfg *config.Config) (int, error) {
	param := chi.URLParam(r, `index`)
	index, err := strconv.Atoi(param)
	if err != nil {
		for i, ch := range cfg.Charts {
			if ch.Name == param {
				return i, nil
			}
		}
		return 0, fmt.Errorf(`no chart named %s`, param)
	}
	if index < 0 || index >= len(cfg.Charts) {
		return 0, fmt.Errorf(`chart index %d out of range [0,%d)`, index, len(cfg.Charts))
	}
	return index, nil
}

// plot draws chart index on the given backend, overriding the job's choice.
func plot(cfg *config.Config, index int, backend, format string) (surface.Surface, error) {
	p, st, err := cfg.Plotter(index)
	if err != nil {
		return nil, err
	}
	st.Backend = backend
	st.Format = format
	return p.Plot(st)
}

// handleChart renders a single chart. ?backend=gonum&format=svg switches to
// a static image.
func handleChart(w http.ResponseWriter, r *http.Request, cfg *config.Config) {
	index, err := chartIndex(r, cfg)
	if err != nil {
		render.Render(w, r, ErrNotFound(err))
		return
	}
	backend := r.URL.Query().Get(`backend`)
	format := strings.ToLower(r.URL.Query().Get(`format`))
	if len(backend) == 0 {
		backend = echarts.Name
	}
	if len(format) == 0 {
		format = echarts.FormatHTML
		if backend == gonum.Name {
			format = gonum.FormatPNG
		}
	}
	s, err := plot(cfg, index, backend, format)
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	buf := new(bytes.Buffer)
	if err := s.Render(buf); err != nil {
		render.Render(w, r, ErrInternalServerError(err))
		return
	}
	if ct, ok := contentTypes[format]; ok {
		w.Header().Set(`Content-Type`, ct)
	}
	w.Write(buf.Bytes())
}

// writeOption writes the echarts option of a chart.
func writeOption(w http.ResponseWriter, r *http.Request, cfg *config.Config, index int) {
	s, err := plot(cfg, index, echarts.Name, echarts.FormatJSON)
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	buf := new(bytes.Buffer)
	if err := s.Render(buf); err != nil {
		render.Render(w, r, ErrInternalServerError(err))
		return
	}
	w.Header().Set(`Content-Type`, contentTypes[echarts.FormatJSON])
	w.Write(buf.Bytes())
}

// handleRender plots a job posted as JSON5 and answers with the echarts
// option of one of its charts, selected by ?index= (default 0).
func handleRender(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxJobSize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			render.Render(w, r, ErrTooLarge(err))
			return
		}
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	cfg, err := config.Parse(body)
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	var index int
	if v := r.URL.Query().Get(`index`); len(v) > 0 {
		if index, err = strconv.Atoi(v); err != nil {
			render.Render(w, r, ErrInvalidRequest(err))
			return
		}
	}
	if index < 0 || index >= len(cfg.Charts) {
		render.Render(w, r, ErrInvalidRequest(fmt.Errorf(`chart index %d out of range [0,%d)`, index, len(cfg.Charts))))
		return
	}
	writeOption(w, r, &cfg, index)
}
