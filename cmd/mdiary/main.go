// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"

	"github.com/MKhiriev/mdiary/internal/app"
	"github.com/MKhiriev/mdiary/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	err := newRootCmd(info).ExecuteContext(ctx)
	stop()

	if err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

// reportError prints the user-facing sentence for err. Errors outside the
// known taxonomy also get their full text.
func reportError(w io.Writer, err error) {
	msg := app.UserMessage(err)
	if msg == app.MsgUnexpected {
		msg = fmt.Sprintf("%s\n%v", msg, err)
	}
	_, _ = fmt.Fprintln(w, color.RedString(msg))
}
