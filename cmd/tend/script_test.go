package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/grindlemire/graft"
	"github.com/rogpeppe/go-internal/testscript"
	"go.trai.ch/tend/internal/app"
)

func TestMain(m *testing.M) {
	testscript.Main(m, map[string]func(){
		"tend": func() {
			os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr,
				func(ctx context.Context) (*app.Components, error) {
					c, _, err := graft.ExecuteFor[*app.Components](ctx)
					return c, err
				}))
		},
	})
}

func TestScripts(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: filepath.Join("testdata", "script"),
		Setup: func(env *testscript.Env) error {
			env.Setenv("NO_COLOR", "1")
			return nil
		},
	})
}
