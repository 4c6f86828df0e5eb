package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/seviu/swiftdaddy"
)

// version is set at build time via ldflags.
var version = "dev"

const previewAddr = ":8000"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch os.Args[1] {
	case "build":
		err = build(ctx, false)
	case "deploy":
		err = build(ctx, true)
	case "run":
		err = run(ctx)
	case "new":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "Usage: swiftdaddy new <directory>")
			os.Exit(1)
		}
		err = runNew(os.Args[2])
	case "version":
		fmt.Printf("swiftdaddy %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func build(ctx context.Context, deploy bool) error {
	app, err := newApp(swiftdaddy.WithDeploy(deploy))
	if err != nil {
		return err
	}
	_, err = app.Publish(ctx, publishSteps(app)...)
	return describe(err)
}

// run builds the site, serves it and rebuilds whenever content or
// resources change.
func run(ctx context.Context) error {
	app, err := newApp()
	if err != nil {
		return err
	}
	rebuild := func(ctx context.Context) error {
		_, err := app.Publish(ctx, publishSteps(app)...)
		return describe(err)
	}
	if err := rebuild(ctx); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	watchErr := make(chan error, 1)
	go func() {
		watchErr <- app.Watch(ctx, []string{swiftdaddy.ContentDirName, swiftdaddy.ResourcesDirName}, rebuild)
	}()

	serveErr := app.Serve(ctx, previewAddr)
	cancel()
	if err := <-watchErr; err != nil {
		return err
	}
	return serveErr
}

// describe adds the failure category to a step error.
func describe(err error) error {
	var stepErr *swiftdaddy.StepError
	if errors.As(err, &stepErr) {
		return fmt.Errorf("%s: %s error: %w", stepErr.Step, stepErr.Kind, stepErr.Err)
	}
	return err
}

func printUsage() {
	fmt.Println(`swiftdaddy - Static site generator for the Swiftdaddy blog

Usage:
  swiftdaddy <command> [arguments]

Commands:
  build         Generate the site into Output/
  run           Generate the site, serve it on localhost:8000 and rebuild on changes
  deploy        Generate the site and push it to the configured Git remote
  new <dir>     Create a new site skeleton in <dir>
  version       Print the swiftdaddy version
  help          Show this help message`)
}
