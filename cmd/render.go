package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	apidash "github.com/kilianp07/energydash/api/dashboard"
	"github.com/kilianp07/energydash/app"
	coredash "github.com/kilianp07/energydash/core/dashboard"
	"github.com/kilianp07/energydash/infra/logger"
	"github.com/kilianp07/energydash/infra/source"
)

var (
	renderData    string
	renderOut     string
	renderLibrary string
	renderDate    string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the dashboard for a snapshot into a static HTML page",
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringVar(&renderData, "data", "", "JSON or YAML snapshot file")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "dashboard.html", "output HTML file, - for stdout")
	renderCmd.Flags().StringVar(&renderLibrary, "library", "", "chart library (echarts or chartjs), defaults to server.library")
	renderCmd.Flags().StringVar(&renderDate, "date", "", "date shown in the page title (YYYY-MM-DD)")
	_ = renderCmd.MarkFlagRequired("data")
}

func runRender(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	lib := renderLibrary
	if lib == "" {
		lib = cfg.Server.Library
	}
	front, err := app.NewFrontend(lib)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(renderData)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}
	data, err := source.DecodeSnapshot(raw, strings.TrimPrefix(strings.ToLower(filepath.Ext(renderData)), "."))
	if err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}

	day := time.Now()
	if renderDate != "" {
		if day, err = time.Parse("2006-01-02", renderDate); err != nil {
			return fmt.Errorf("invalid date %q", renderDate)
		}
	}

	log := logger.New("render")
	dash, err := coredash.New(cfg.Dashboard, front, nil, log)
	if err != nil {
		return err
	}
	panels := dash.Render(dash.NewPage(), data)
	for _, p := range panels {
		if !p.OK() {
			log.Warnf("%s", p.Message)
		}
	}
	nav := apidash.NewNav(day, day)
	nav.Static = true
	var buf bytes.Buffer
	if err := apidash.WritePage(&buf, apidash.NewPageView(dash.Title(), front, nav, panels)); err != nil {
		return err
	}

	if renderOut == "-" {
		_, err = cmd.OutOrStdout().Write(buf.Bytes())
		return err
	}
	if err := os.WriteFile(renderOut, buf.Bytes(), 0o644); err != nil {
		return err
	}
	log.Infof("wrote %s (%d charts)", renderOut, len(panels))
	return nil
}
