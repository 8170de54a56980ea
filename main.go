// Copyright 2012 Google Inc. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/hanwen/go-ptpip/log"
	"github.com/hanwen/go-ptpip/monitor"
	"github.com/hanwen/go-ptpip/ptp"
	"github.com/hanwen/go-ptpip/ptpip"
)

var (
	config   appConfig
	children *log.Children
)

var app = &cli.App{
	Name:  "go-ptpip",
	Usage: "talk to cameras over PTP-IP",

	Flags: []cli.Flag{
		&cli.StringFlag{Name: "config", Usage: "TOML config `FILE`"},
		&cli.StringFlag{Name: "host", Usage: "responder host name or address"},
		&cli.IntFlag{Name: "port", Value: ptpip.DefaultPort, Usage: "responder TCP port"},
		&cli.StringFlag{Name: "name", Usage: "initiator name sent in the handshake (default: host name)"},
		&cli.DurationFlag{Name: "timeout", Value: 10 * time.Second, Usage: "deadline for each handshake step and transaction"},
		&cli.BoolFlag{Name: "debug-ptpip", Usage: "log packets and transactions"},
		&cli.BoolFlag{Name: "debug-data", Usage: "hex dump data phases"},
		&cli.StringFlag{Name: "log-level", Usage: "minimum level of the root logger"},
	},

	Before: setup,
	Commands: []*cli.Command{
		probeCmd,
		infoCmd,
		storageCmd,
		lsCmd,
		getCmd,
		monitorCmd,
	},
}

func main() {
	if err := app.Run(os.Args); err != nil {
		log.Root.Fatalf("%v", err)
	}
}

// setup builds the config from defaults, the config file and flags,
// in increasing precedence.
func setup(c *cli.Context) error {
	config = defaultAppConfig()
	if path := c.String("config"); path != "" {
		if err := loadConfigFile(path, &config); err != nil {
			return err
		}
	}
	if c.IsSet("host") {
		config.Host = c.String("host")
	}
	if c.IsSet("port") {
		config.Port = c.Int("port")
	}
	if c.IsSet("name") {
		config.PTPIP.Name = c.String("name")
	}
	if c.IsSet("timeout") {
		config.PTPIP.Timeout = c.Duration("timeout")
	}
	if c.IsSet("debug-ptpip") {
		config.PTPIP.Debug.PTPIP = c.Bool("debug-ptpip")
	}
	if c.IsSet("debug-data") {
		config.PTPIP.Debug.Data = c.Bool("debug-data")
	}
	if c.IsSet("log-level") {
		config.LogLevel = c.String("log-level")
	}

	if err := log.SetLevel(config.LogLevel); err != nil {
		return err
	}
	children = log.PrepareChildren(log.Root, config.PTPIP.Debug.PTPIP, config.PTPIP.Debug.Data, config.PTPIP.Debug.PTPIP)
	config.PTPIP.Log = children
	return nil
}

func signalContext(c *cli.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
}

// withConn connects, optionally opens a session, and runs fn.
func withConn(c *cli.Context, session bool, fn func(*ptpip.Conn) error) error {
	if config.Host == "" {
		return fmt.Errorf("no responder: set --host or host in the config file")
	}
	ctx, cancel := signalContext(c)
	defer cancel()

	conn, err := ptpip.Dial(ctx, config.Addr(), config.PTPIP)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", config.Addr(), err)
	}
	defer conn.Close()

	if session {
		if err := conn.OpenSession(); err != nil {
			return fmt.Errorf("OpenSession: %w", err)
		}
	}
	return fn(conn)
}

func parseHandle(s string) (ptp.UINT32, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("bad handle %q: %w", s, err)
	}
	return ptp.UINT32(v), nil
}

var probeCmd = &cli.Command{
	Name:  "probe",
	Usage: "handshake and print the responder's identity",
	Action: func(c *cli.Context) error {
		return withConn(c, false, func(conn *ptpip.Conn) error {
			r := conn.Responder()
			fmt.Printf("name:       %s\n", r.Name)
			fmt.Printf("guid:       %v\n", r.GUID)
			fmt.Printf("version:    %v\n", r.ProtocolVersion)
			fmt.Printf("connection: %d\n", uint32(r.ConnectionNumber))
			return nil
		})
	},
}

var infoCmd = &cli.Command{
	Name:  "info",
	Usage: "print the DeviceInfo data set",
	Action: func(c *cli.Context) error {
		return withConn(c, true, func(conn *ptpip.Conn) error {
			var info ptp.DeviceInfo
			if err := conn.GetDeviceInfo(&info); err != nil {
				return fmt.Errorf("GetDeviceInfo: %w", err)
			}
			fmt.Printf("%s %s (%s, serial %s)\n", info.Manufacturer, info.Model, info.DeviceVersion, info.SerialNumber)
			fmt.Println(info.String())
			return nil
		})
	},
}

var storageCmd = &cli.Command{
	Name:  "storage",
	Usage: "list storages with their capacity",
	Action: func(c *cli.Context) error {
		return withConn(c, true, func(conn *ptpip.Conn) error {
			var ids ptp.Uint32Array
			if err := conn.GetStorageIDs(&ids); err != nil {
				return fmt.Errorf("GetStorageIDs: %w", err)
			}
			for _, id := range ids.Values {
				var si ptp.StorageInfo
				if err := conn.GetStorageInfo(id, &si); err != nil {
					return fmt.Errorf("GetStorageInfo %v: %w", id, err)
				}
				fmt.Printf("%v %q: %s free of %s, %s\n", id, si.StorageDescription,
					humanize.IBytes(uint64(si.FreeSpaceInBytes)),
					humanize.IBytes(uint64(si.MaxCapability)),
					ptp.CodeName(ptp.ST_names, si.StorageType))
			}
			return nil
		})
	},
}

var lsCmd = &cli.Command{
	Name:  "ls",
	Usage: "list objects",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "storage", Value: "0xffffffff", Usage: "storage ID; the default lists all"},
		&cli.StringFlag{Name: "parent", Value: "0", Usage: "parent handle; 0 lists all objects, 0xffffffff the root"},
	},
	Action: func(c *cli.Context) error {
		storage, err := parseHandle(c.String("storage"))
		if err != nil {
			return err
		}
		parent, err := parseHandle(c.String("parent"))
		if err != nil {
			return err
		}
		return withConn(c, true, func(conn *ptpip.Conn) error {
			var handles ptp.Uint32Array
			if err := conn.GetObjectHandles(storage, 0, parent, &handles); err != nil {
				return fmt.Errorf("GetObjectHandles: %w", err)
			}
			for _, h := range handles.Values {
				var oi ptp.ObjectInfo
				if err := conn.GetObjectInfo(h, &oi); err != nil {
					return fmt.Errorf("GetObjectInfo %v: %w", h, err)
				}
				when := "-"
				if t, err := oi.ModificationTime(); err == nil && !t.IsZero() {
					when = humanize.Time(t)
				}
				kind := ptp.CodeName(ptp.OFC_names, oi.ObjectFormat)
				fmt.Printf("%v\t%8s\t%-14s\t%s\t%s\n", h,
					humanize.IBytes(uint64(oi.CompressedSize)), when, kind, oi.Filename)
			}
			return nil
		})
	},
}

var getCmd = &cli.Command{
	Name:      "get",
	Usage:     "download an object",
	ArgsUsage: "HANDLE [FILE]",
	Action: func(c *cli.Context) error {
		if c.NArg() < 1 {
			return fmt.Errorf("usage: get HANDLE [FILE]")
		}
		handle, err := parseHandle(c.Args().Get(0))
		if err != nil {
			return err
		}
		return withConn(c, true, func(conn *ptpip.Conn) error {
			var oi ptp.ObjectInfo
			if err := conn.GetObjectInfo(handle, &oi); err != nil {
				return fmt.Errorf("GetObjectInfo %v: %w", handle, err)
			}
			dest := c.Args().Get(1)
			if dest == "" {
				dest = filepath.Base(oi.Filename)
			}
			start := time.Now()
			err := download(dest, func(w io.Writer) error {
				return conn.GetObject(handle, w)
			})
			if err != nil {
				return fmt.Errorf("GetObject %v: %w", handle, err)
			}
			fmt.Printf("%s: %s in %v\n", dest,
				humanize.IBytes(uint64(oi.CompressedSize)), time.Since(start).Round(time.Millisecond))
			return nil
		})
	},
}

// download writes the output of fetch to the file dest. The file is
// removed if fetch fails, so a cancelled transfer leaves nothing behind.
func download(dest string, fetch func(io.Writer) error) error {
	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	err = fetch(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(dest)
		return err
	}
	return nil
}

var monitorCmd = &cli.Command{
	Name:  "monitor",
	Usage: "relay events over websocket and serve /metrics",
	Flags: []cli.Flag{
		&cli.StringFlag{Name: "listen", Usage: "HTTP listen address (default: monitor_addr or localhost:8080)"},
	},
	Action: func(c *cli.Context) error {
		addr := config.MonitorAddr
		if c.IsSet("listen") {
			addr = c.String("listen")
		}

		reg := prometheus.NewRegistry()
		metrics := ptpip.NewMetrics()
		if err := metrics.Register(reg); err != nil {
			return err
		}
		config.PTPIP.Metrics = metrics

		return withConn(c, false, func(conn *ptpip.Conn) error {
			ctx, cancel := signalContext(c)
			defer cancel()
			eg, egCtx := errgroup.WithContext(ctx)

			s := monitor.NewServer(egCtx, conn, reg, children.Monitor)
			s.Device = conn.Responder().Name
			srv := &http.Server{Addr: addr, Handler: s.Handler()}

			eg.Go(s.Run)
			eg.Go(func() error {
				children.Monitor.Infof("listening on http://%s", addr)
				if err := srv.ListenAndServe(); err != http.ErrServerClosed {
					return err
				}
				return nil
			})
			eg.Go(func() error {
				<-egCtx.Done()
				shutdown, done := context.WithTimeout(context.Background(), 5*time.Second)
				defer done()
				return srv.Shutdown(shutdown)
			})
			return eg.Wait()
		})
	},
}
