package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"hookprobe/internal/engine/webhooks"
	"hookprobe/internal/pkg/errors"
)

func newSignCmd(a *app) *cobra.Command {
	var (
		payloadPath  string
		secretSource string
		header       bool
	)

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Print the HMAC-SHA256 signature of a payload",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := a.payload(cmd, payloadPath)
			if err != nil {
				return err
			}
			secret, err := a.secret(cmd.Context(), secretSource)
			if err != nil {
				return err
			}

			sig := webhooks.Sign(secret, body)
			if header {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", webhooks.SignatureHeader, sig)
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), sig)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&payloadPath, "payload", "", "payload file (.json, .yaml) or - for stdin; built-in sample when empty")
	cmd.Flags().StringVar(&secretSource, "secret-source", "", "override secret.source (static, env, aws)")
	cmd.Flags().BoolVar(&header, "header", false, "print as an HTTP header line")

	return cmd
}

func newVerifyCmd(a *app) *cobra.Command {
	var (
		payloadPath  string
		secretSource string
		signature    string
	)

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Recompute a payload signature and compare it with the given one",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if signature == "" {
				return errors.New(errors.ErrCodeInvalidInput, "--signature is required", nil)
			}
			body, err := a.payload(cmd, payloadPath)
			if err != nil {
				return err
			}
			secret, err := a.secret(cmd.Context(), secretSource)
			if err != nil {
				return err
			}

			if !webhooks.Verify(secret, body, signature) {
				return errors.New(errors.ErrCodeSignatureMismatch,
					fmt.Sprintf("expected %s, received %s", webhooks.Sign(secret, body), signature), nil)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "signature OK")
			return nil
		},
	}

	cmd.Flags().StringVar(&payloadPath, "payload", "", "payload file (.json, .yaml) or - for stdin; built-in sample when empty")
	cmd.Flags().StringVar(&secretSource, "secret-source", "", "override secret.source (static, env, aws)")
	cmd.Flags().StringVar(&signature, "signature", "", "signature to check (base64)")

	return cmd
}
