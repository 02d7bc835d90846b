package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/admpub/log"
	"github.com/admpub/pp"

	"github.com/admpub/speedy-charts/internal/server"
	"github.com/admpub/speedy-charts/pkg/config"
	"github.com/admpub/speedy-charts/pkg/palette"
	"github.com/admpub/speedy-charts/pkg/surface"
	"github.com/admpub/speedy-charts/pkg/surface/echarts"
	"github.com/admpub/speedy-charts/pkg/surface/gonum"
)

// go run . -c ./config/charts.json5 -o ./out
// go run . -c ./config/charts.json5 -b gonum -f svg -o ./out
// go run . -c ./config/charts.json5 -s :8080

type args struct {
	configPath string
	outputDir  string
	backend    string
	format     string
	serve      string
	list       bool
	dump       bool
}

func main() {
	a := getCommandLineArgs()
	if a.list {
		fmt.Println(`backends:`, strings.Join(surface.Names(), `, `))
		fmt.Println(`chart kinds:`, strings.Join(config.Kinds(), `, `))
		fmt.Println(`palettes:`, strings.Join(palette.Names(), `, `))
		fmt.Println(`gonum themes:`, strings.Join(gonum.Themes(), `, `))
		return
	}
	// Default to ./config/charts.json5
	if a.configPath == "" {
		a.configPath = "./config/charts.json5"
	}
	cfg, err := config.LoadConfig(a.configPath)
	if err != nil {
		fmt.Printf("failed to load charts from %s: %v\n", a.configPath, err)
		return
	}
	if len(a.backend) > 0 {
		cfg.Backend = a.backend
	}
	if len(a.format) > 0 {
		cfg.Format = a.format
	}
	if a.dump {
		pp.Println(cfg)
	}
	if len(a.serve) > 0 {
		if err := server.Start(&cfg, a.serve); err != nil {
			log.Fatal(err)
		}
		return
	}
	if err := renderAll(&cfg, a.outputDir); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func renderAll(cfg *config.Config, dir string) error {
	if len(dir) == 0 {
		dir = `.`
	}
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return err
	}
	for i, ch := range cfg.Charts {
		p, st, err := cfg.Plotter(i)
		if err != nil {
			return err
		}
		s, err := p.Plot(st)
		if err != nil {
			return fmt.Errorf(`chart %s: %w`, ch.Name, err)
		}
		path := filepath.Join(dir, ch.Name+`.`+extension(st.Backend, st.Format))
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		err = s.Render(f)
		f.Close()
		if err != nil {
			return fmt.Errorf(`chart %s: %w`, ch.Name, err)
		}
		log.Infof(`wrote %s`, path)
	}
	return nil
}

func extension(backend, format string) string {
	if len(format) > 0 {
		return format
	}
	if backend == gonum.Name {
		return gonum.FormatPNG
	}
	return echarts.FormatHTML
}

func getCommandLineArgs() (a args) {
	for i := 1; i < len(os.Args); i++ {
		arg := os.Args[i]
		var next string
		if i+1 < len(os.Args) {
			next = os.Args[i+1]
		}
		switch arg {
		case "-c", "--config":
			a.configPath = next
			i++
		case "-o", "--output":
			a.outputDir = next
			i++
		case "-b", "--backend":
			a.backend = next
			i++
		case "-f", "--format":
			a.format = next
			i++
		case "-s", "--serve":
			a.serve = next
			i++
		case "-l", "--list":
			a.list = true
		case "-d", "--dump":
			a.dump = true
		default:
			fmt.Printf("ignoring unknown argument %s\n", arg)
		}
	}
	return a
}
