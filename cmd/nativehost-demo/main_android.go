// Command nativehost-demo is the controls example as an Android
// NativeActivity. Build it as a shared library and package it with
// android/MainActivity.java.
package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gogpu/nativehost"
	"github.com/gogpu/nativehost/bridge"
	"github.com/gogpu/nativehost/controls"
	"github.com/gogpu/nativehost/platform"
	"github.com/gogpu/nativehost/platform/android"
	"github.com/gogpu/nativehost/store"
	"github.com/gogpu/nativehost/ui"
)

func init() { android.Main(run) }

func main() {}

func run(d *android.Driver) {
	nativehost.SetLogger(slog.New(android.NewLogcatHandler("nativehost", slog.LevelInfo)))
	log := nativehost.Logger()

	br := bridge.New(d.BridgeContext, bridge.NewJNICaller())
	opts := []nativehost.Option{
		nativehost.WithBridge(br),
		nativehost.WithClipboard(bridge.NewClipboard(br)),
	}

	if dir := d.DataDir(); dir != "" {
		snapshots, err := store.Open(filepath.Join(dir, "snapshots.db"))
		if err != nil {
			log.Warn("snapshots disabled", "err", err)
		} else {
			defer snapshots.Close()
			opts = append(opts, nativehost.WithStore(snapshots, controls.SnapshotKey))
		}
	}

	host := nativehost.New(func() ui.Program { return controls.New() }, opts...)
	if err := platform.NewLoop(d).Run(host); err != nil {
		log.Error("nativehost-demo: stopped", "err", err)
		os.Exit(1)
	}
}
