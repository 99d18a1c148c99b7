package main

import (
	"context"
	"flag"
	"time"

	"github.com/filesmanager/filesmanager/internal/signals"
	"github.com/filesmanager/filesmanager/internal/version"
	"github.com/golang/glog"
)

func main() {
	// We need to parse flags for glog-related options to take effect
	flag.Parse()
	defer glog.Flush()

	glog.Infof(
		"Starting files-manager API Server -- version %s -- commit %s",
		version.Version(),
		version.Commit(),
	)

	ctx := signals.Context()

	server, err := getAPIServerFromEnvironment(ctx)
	if err != nil {
		glog.Fatal(err)
	}
	defer func() {
		closeCtx, cancel :=
			context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		server.close(closeCtx)
	}()

	if err := server.ListenAndServe(ctx); err != nil {
		glog.Error(err)
	}
}
