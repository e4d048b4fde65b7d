// Copyright (c) 2026, Chartex Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command chartdemo hosts a chart in a browser page: it serves the
// chart geometry over HTTP, bridges browser pointer events to the
// chart's router over a websocket, and reloads the data file when it
// changes on disk.
package main

import (
	"flag"
	"log/slog"
	"net/http"
	"os"

	"github.com/fsnotify/fsnotify"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	dataFile := flag.String("data", "data.toml", "chart data file")
	themeFile := flag.String("theme", "", "theme file (optional)")
	flag.Parse()

	srv, err := newServer(*dataFile, *themeFile)
	if err != nil {
		slog.Error("startup failed", "err", err)
		os.Exit(1)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		slog.Error("watcher init failed", "err", err)
		os.Exit(1)
	}
	defer watcher.Close()
	if err := watcher.Add(*dataFile); err != nil {
		slog.Error("watch failed", "file", *dataFile, "err", err)
		os.Exit(1)
	}
	go srv.watch(watcher)

	mux := http.NewServeMux()
	mux.HandleFunc("/", srv.handleIndex)
	mux.HandleFunc("/render", srv.handleRender)
	mux.HandleFunc("/events", srv.handleEvents)

	slog.Info("listening", "addr", *addr, "data", *dataFile)
	if err := http.ListenAndServe(*addr, mux); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
