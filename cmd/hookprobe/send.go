package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"hookprobe/internal/engine/payload"
	"hookprobe/internal/engine/webhooks"
	"hookprobe/internal/platform/repositories"
)

type sendOptions struct {
	url          string
	payloadPath  string
	secretSource string
	timeout      time.Duration
	noHistory    bool
}

func newSendCmd(a *app) *cobra.Command {
	var opts sendOptions

	cmd := &cobra.Command{
		Use:   "send",
		Short: "POST one signed payload to the target and print the response",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSend(cmd, a, opts)
		},
	}

	cmd.Flags().StringVar(&opts.url, "url", "", "target URL (default target.url)")
	cmd.Flags().StringVar(&opts.payloadPath, "payload", "", "payload file (.json, .yaml) or - for stdin; built-in sample when empty")
	cmd.Flags().StringVar(&opts.secretSource, "secret-source", "", "override secret.source (static, env, aws)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "request timeout (default http.timeout)")
	cmd.Flags().BoolVar(&opts.noHistory, "no-history", false, "do not record this delivery")

	return cmd
}

func runSend(cmd *cobra.Command, a *app, opts sendOptions) error {
	ctx := cmd.Context()

	target := opts.url
	if target == "" {
		target = a.cfg.Target.URL
	}

	body, err := a.payload(cmd, opts.payloadPath)
	if err != nil {
		return err
	}
	secret, err := a.secret(ctx, opts.secretSource)
	if err != nil {
		return err
	}

	timeout := a.cfg.HTTP.Timeout
	if opts.timeout > 0 {
		timeout = opts.timeout
	}

	dispatcherOpts := []webhooks.Option{
		webhooks.WithTimeout(timeout),
		webhooks.WithUserAgent(a.cfg.HTTP.UserAgent),
		webhooks.WithMaxResponseBody(a.cfg.HTTP.MaxResponseBody),
	}

	if a.cfg.History.Enabled && !opts.noHistory {
		db, err := a.openHistory()
		if err != nil {
			log.Warn().Err(err).Str("path", a.cfg.History.Path).Msg("history unavailable, sending without recording")
		} else {
			defer db.Close()
			dispatcherOpts = append(dispatcherOpts, webhooks.WithRecorder(repositories.NewDeliveryRepository(db)))
		}
	}

	log.Info().
		Str("url", target).
		Int("bytes", len(body)).
		Strs("transactions", payload.Summarize(body)).
		Msg("sending signed payload")

	result, sendErr := webhooks.NewDispatcher(dispatcherOpts...).Send(ctx, target, secret, body)
	if result != nil {
		printResult(cmd.OutOrStdout(), result)
	}
	return sendErr
}

// printResult writes the response the way curl does with headers enabled.
func printResult(w io.Writer, r *webhooks.Result) {
	fmt.Fprintf(w, "%s %s\n", r.Proto, r.Status)

	keys := make([]string, 0, len(r.Header))
	for k := range r.Header {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(w, "%s: %s\n", k, strings.Join(r.Header[k], ", "))
	}

	fmt.Fprintln(w)
	w.Write(r.Body)
	if len(r.Body) > 0 && r.Body[len(r.Body)-1] != '\n' {
		fmt.Fprintln(w)
	}
	if r.Truncated {
		fmt.Fprintln(w, "[response truncated]")
	}
	fmt.Fprintf(w, "delivery %s: %d in %dms\n", r.Delivery.ID, r.Delivery.StatusCode, r.Delivery.DurationMs)
}
