//
// Copyright 2019-2020 Nestybox, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//

package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	systemd "github.com/coreos/go-systemd/v22/daemon"
	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/yuth/jsii/domain"
	"github.com/yuth/jsii/ipc"
	"github.com/yuth/jsii/kernel"
	"github.com/yuth/jsii/typeregistry"
)

const (
	runDir  string = "/run/jsii"
	pidFile string = runDir + "/jsii-kernel.pid"
	usage   string = `jsii-kernel object store

jsii-kernel is the child-process half of a cross-runtime object store: it
tracks every object handed across the host/kernel boundary, computes the
minimal interface set each one presents, and tells the host when an object
it no longer references can be forgotten.
`
)

var (
	version  string
	commitId string
	builtAt  string
	builtBy  string
)

// typeDescriptorFile is the on-disk shape of the --types file: a flat list
// of type descriptors the resolver serves to the interface-closure builder.
// The real FQN resolver — the thing that actually inspects a runtime's type
// system — stays an external collaborator (domain/typeresolver.go); this
// file format is the bootstrap shape this binary accepts in its place.
type typeDescriptorFile struct {
	Types []struct {
		FQN        string   `json:"fqn"`
		Kind       string   `json:"kind"`
		Base       string   `json:"base,omitempty"`
		Interfaces []string `json:"interfaces,omitempty"`
	} `json:"types"`
}

func loadTypeResolver(path string) (domain.TypeResolverIface, error) {
	if path == "" {
		return typeregistry.NewStaticResolver(), nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading type descriptor file %s: %w", path, err)
	}

	var file typeDescriptorFile
	if err := json.Unmarshal(b, &file); err != nil {
		return nil, fmt.Errorf("parsing type descriptor file %s: %w", path, err)
	}

	descriptors := make([]domain.TypeDescriptor, 0, len(file.Types))
	for _, t := range file.Types {
		descriptors = append(descriptors, domain.TypeDescriptor{
			FQN:        t.FQN,
			Kind:       domain.TypeKind(t.Kind),
			Base:       t.Base,
			Interfaces: t.Interfaces,
		})
	}

	return typeregistry.NewStaticResolver(descriptors...), nil
}

func runProfiler(ctx *cli.Context) (interface{ Stop() }, error) {
	var prof interface{ Stop() }

	cpuProfOn := ctx.Bool("cpu-profiling")
	memProfOn := ctx.Bool("memory-profiling")

	if cpuProfOn && memProfOn {
		return nil, fmt.Errorf("unsupported parameter combination: cpu and memory profiling")
	}
	if !(cpuProfOn || memProfOn) {
		return nil, nil
	}

	if cpuProfOn {
		prof = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	}
	if memProfOn {
		prof = profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook)
	}
	return prof, nil
}

func exitHandler(signalChan chan os.Signal, prof interface{ Stop() }) {
	s := <-signalChan
	logrus.Warnf("jsii-kernel caught signal: %s", s)
	logrus.Info("stopping (gracefully) ...")

	systemd.SdNotify(false, systemd.SdNotifyStopping)

	if s == syscall.SIGABRT || s == syscall.SIGQUIT || s == syscall.SIGSEGV {
		stacktrace := make([]byte, 32768)
		length := runtime.Stack(stacktrace, true)
		logrus.Warnf("\n\n%s\n", string(stacktrace[:length]))
	}

	if prof != nil {
		prof.Stop()
	}

	if err := destroyPidFile(pidFile); err != nil {
		logrus.Warnf("failed to destroy pid file: %v", err)
	}

	logrus.Info("exiting ...")
	os.Exit(0)
}

func main() {
	app := cli.NewApp()
	app.Name = "jsii-kernel"
	app.Usage = usage
	app.Version = version

	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "log",
			Value: "",
			Usage: "log file path or empty string for stderr output",
		},
		cli.StringFlag{
			Name:  "log-level",
			Value: "info",
			Usage: "log categories to include (debug, info, warning, error, fatal)",
		},
		cli.StringFlag{
			Name:  "log-format",
			Value: "text",
			Usage: "log format; must be json or text",
		},
		cli.StringFlag{
			Name:  "types",
			Value: "",
			Usage: "path to a JSON file of type descriptors (class/interface/enum FQNs); empty for none registered up front",
		},
		cli.IntFlag{
			Name:  "id-origin",
			Value: kernel.DefaultOrigin,
			Usage: "first instance id issued by the sequence",
		},
		cli.IntFlag{
			Name:  "id-stride",
			Value: kernel.DefaultStride,
			Usage: "increment between successive instance ids",
		},
		cli.BoolFlag{
			Name:   "cpu-profiling",
			Usage:  "enable cpu-profiling data collection",
			Hidden: true,
		},
		cli.BoolFlag{
			Name:   "memory-profiling",
			Usage:  "enable memory-profiling data collection",
			Hidden: true,
		},
	}

	cli.VersionPrinter = func(c *cli.Context) {
		fmt.Printf("jsii-kernel\n\tversion: \t%s\n\tcommit: \t%s\n\tbuilt at: \t%s\n\tbuilt by: \t%s\n",
			c.App.Version, commitId, builtAt, builtBy)
	}

	app.Before = func(ctx *cli.Context) error {
		if path := ctx.GlobalString("log"); path != "" {
			f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND|os.O_SYNC, 0666)
			if err != nil {
				logrus.Fatalf("error opening log file %v: %v. exiting ...", path, err)
				return err
			}
			logrus.SetOutput(f)
			log.SetOutput(f)
		} else {
			logrus.SetOutput(os.Stderr)
			log.SetOutput(os.Stderr)
		}

		if ctx.GlobalString("log-format") == "json" {
			logrus.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02 15:04:05"})
		} else {
			logrus.SetFormatter(&logrus.TextFormatter{TimestampFormat: "2006-01-02 15:04:05", FullTimestamp: true})
		}

		switch ctx.GlobalString("log-level") {
		case "debug":
			logrus.SetLevel(logrus.DebugLevel)
		case "info":
			logrus.SetLevel(logrus.InfoLevel)
		case "warning":
			logrus.SetLevel(logrus.WarnLevel)
		case "error":
			logrus.SetLevel(logrus.ErrorLevel)
		case "fatal":
			logrus.SetLevel(logrus.FatalLevel)
		default:
			logrus.Fatalf("log-level option %q not recognized. exiting ...", ctx.GlobalString("log-level"))
		}

		return nil
	}

	app.Action = func(ctx *cli.Context) error {
		logrus.Info("initiating jsii-kernel ...")

		if err := checkPidFile("jsii-kernel", pidFile); err != nil {
			return err
		}

		resolver, err := loadTypeResolver(ctx.String("types"))
		if err != nil {
			return err
		}
		resolver = typeregistry.NewCachingResolver(resolver)

		store := kernel.NewObjectStore(resolver, ctx.Int("id-origin"), ctx.Int("id-stride"))
		protocol := ipc.NewProtocolService()
		protocol.Setup(store)

		codec := ipc.NewCodec(os.Stdin, os.Stdout)
		loop := ipc.NewEventLoop(codec, protocol, &ipc.CreateHandler{Store: store})

		prof, err := runProfiler(ctx)
		if err != nil {
			logrus.Fatal(err)
		}

		exitChan := make(chan os.Signal, 1)
		signal.Notify(exitChan, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGSEGV, syscall.SIGQUIT)
		go exitHandler(exitChan, prof)

		if err := createPidFile(pidFile); err != nil {
			return fmt.Errorf("failed to create pid file: %w", err)
		}

		systemd.SdNotify(false, systemd.SdNotifyReady)
		logrus.Info("ready ...")

		if err := loop.Run(); err != nil {
			logrus.Errorf("event loop exited with error: %v", err)
		}

		if err := destroyPidFile(pidFile); err != nil {
			logrus.Warnf("failed to destroy pid file: %v", err)
		}
		logrus.Info("done.")

		return nil
	}

	if err := app.Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}
