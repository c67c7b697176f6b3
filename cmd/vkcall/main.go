// Command vkcall sends a single VK API request and prints the response.
//
//	vkcall [-config file] [-v] [-trace] [-metrics] method key=value...
//
// The token and endpoint come from the config file and the VK_* environment
// variables. Values that are JSON arrays or objects are sent as such, all
// other values as strings.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"
	"time"

	"github.com/casualjim/vkwave/client"
	"github.com/casualjim/vkwave/client/observe"
	"github.com/casualjim/vkwave/internal/broker"
	"github.com/casualjim/vkwave/internal/config"
	"github.com/casualjim/vkwave/pkg/natsx"
	"github.com/casualjim/vkwave/pkg/slogx"
	"github.com/fatih/color"
	_ "github.com/joho/godotenv/autoload"
	"github.com/k0kubun/pp/v3"
	"github.com/phsym/zeroslog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
)

const traceSubject = "vkwave.trace"

var level = new(slog.LevelVar)

func init() {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Stamp}
	log := zerolog.New(output).With().Timestamp().Logger()
	level.Set(slog.LevelWarn)
	slog.SetDefault(slog.New(
		zeroslog.NewHandler(log, &zeroslog.HandlerOptions{Level: level}),
	))
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error")+": "+err.Error())
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("vkcall", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "path to a YAML config file")
	verbose := fs.Bool("v", false, "log requests at debug level")
	trace := fs.Bool("trace", false, "print the request record after the call")
	metrics := fs.Bool("metrics", false, "print request metrics after the call")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		fs.Usage()
		return errors.New("method is required")
	}
	if *verbose {
		level.Set(slog.LevelDebug)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	params, err := parseParams(fs.Args()[1:])
	if err != nil {
		return err
	}

	options := append(cfg.ClientOptions(), client.WithSignal(client.AfterRequest, client.LogAfterRequest))

	if cfg.NATS.Subject != "" {
		nc, err := natsx.NewClient()
		if err != nil {
			return fmt.Errorf("nats: %w", err)
		}
		defer nc.Drain() //nolint:errcheck
		options = append(options, client.WithSignal(client.AfterRequest, observe.NATS(nc, cfg.NATS.Subject, cfg.IncludeData())))
	}

	printer := pp.New()
	printer.SetColoringEnabled(!color.NoColor)

	traced := make(chan struct{})
	if *trace || cfg.Trace {
		local := broker.NewLocal()
		sub, err := local.Subscribe(ctx, traceSubject, func(_ context.Context, data []byte) {
			printer.SetOutput(stderr)
			printer.Println(gjson.ParseBytes(data).Value())
			close(traced)
		})
		if err != nil {
			return err
		}
		defer sub.Unsubscribe()
		options = append(options, client.WithSignal(client.AfterRequest, observe.NATS(local, traceSubject, false)))
	} else {
		close(traced)
	}

	api := client.NewHTTPClient(options...)
	defer api.Close() //nolint:errcheck

	reg := prometheus.NewRegistry()
	m, err := observe.NewMetrics(reg)
	if err != nil {
		return err
	}
	api.SetContextFactory(m.Factory(api.ContextFactory()))

	rc := api.CreateRequest(client.MethodName(fs.Arg(0)), params)
	rc.MustSetExceptionHandler(client.ErrAPI, describeAPIError)
	rc.SendRequest(ctx)

	select {
	case <-traced:
	case <-time.After(time.Second):
		slog.WarnContext(ctx, "timed out waiting for the request trace", slogx.RequestID(rc.ID()))
	}

	if *metrics {
		if err := printMetrics(stderr, reg); err != nil {
			return err
		}
	}

	res := rc.Result()
	if res.State().IsException() {
		if data := res.ExceptionData(); len(data) > 0 {
			printer.SetOutput(stderr)
			printer.Println(data)
		}
		return fmt.Errorf("%s: %w", rc.MethodName(), res.Exception())
	}
	printer.SetOutput(stdout)
	printer.Println(res.Data().Value())
	return nil
}

func describeAPIError(_ context.Context, rc *client.RequestContext) {
	var apiErr *client.APIError
	if errors.As(rc.Result().Exception(), &apiErr) {
		rc.Result().SetExceptionData(map[string]any{
			"error_code": apiErr.Code,
			"error_msg":  apiErr.Message,
		})
	}
}

// parseParams turns key=value arguments into request params. JSON arrays and
// objects are decoded, everything else stays a string.
func parseParams(args []string) (client.Params, error) {
	params := make(client.Params, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid parameter %q, expected key=value", arg)
		}
		if (strings.HasPrefix(value, "[") || strings.HasPrefix(value, "{")) && gjson.Valid(value) {
			params[key] = gjson.Parse(value).Value()
			continue
		}
		params[key] = value
	}
	return params, nil
}

func printMetrics(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	var lines []string
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			labels := make([]string, 0, len(metric.GetLabel()))
			for _, l := range metric.GetLabel() {
				labels = append(labels, l.GetName()+"="+l.GetValue())
			}
			var value string
			switch {
			case metric.GetCounter() != nil:
				value = fmt.Sprint(metric.GetCounter().GetValue())
			case metric.GetGauge() != nil:
				value = fmt.Sprint(metric.GetGauge().GetValue())
			case metric.GetHistogram() != nil:
				value = fmt.Sprintf("count=%d sum=%g", metric.GetHistogram().GetSampleCount(), metric.GetHistogram().GetSampleSum())
			}
			lines = append(lines, fmt.Sprintf("%s{%s} %s", color.CyanString(mf.GetName()), strings.Join(labels, ","), value))
		}
	}
	sort.Strings(lines)
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
