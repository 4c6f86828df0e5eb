package swiftdaddy

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// CommandRunner runs an external command in dir and returns its combined
// output.
type CommandRunner interface {
	Run(ctx context.Context, dir, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return out, fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, bytes.TrimSpace(out))
	}
	return out, nil
}

// Deploy pushes the output directory to the site's Git remote. The step is
// skipped unless the app was created with WithDeploy(true). A failure
// leaves the output directory untouched.
func Deploy() Step {
	return Step{
		Name: "Deploy",
		Kind: KindDeploy,
		Run: func(ctx context.Context, pc *Context) error {
			if !pc.deploy {
				return errSkipStep
			}
			target := pc.Site.Deploy
			if target.Repository == "" {
				return configError("swiftdaddy: no deploy repository configured")
			}
			dir := filepath.Join(pc.WorkDir, "deploy")
			if err := os.RemoveAll(dir); err != nil {
				return err
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}

			git := func(args ...string) error {
				_, err := pc.runner.Run(ctx, dir, "git", args...)
				return err
			}

			loc := pc.Site.Config.TimeZone
			if loc == nil {
				loc = pc.now().Location()
			}
			message := "Publish deploy " + pc.now().In(loc).Format("2006-01-02 15:04")

			if err := git("init"); err != nil {
				return err
			}
			if err := git("remote", "add", "origin", target.RemoteURL()); err != nil {
				return err
			}
			if err := git("fetch", "origin"); err != nil {
				return err
			}
			if err := git("checkout", "-B", target.Branch); err != nil {
				return err
			}
			// The branch does not exist on a fresh remote.
			if err := git("reset", "--soft", "origin/"+target.Branch); err != nil {
				pc.Logger().Infof("deploy: no remote branch %s, starting a new history", target.Branch)
			}
			if err := copyTree(pc.OutputDir, dir); err != nil {
				return fmt.Errorf("swiftdaddy: copy output: %w", err)
			}
			if err := git("add", "-A"); err != nil {
				return err
			}
			if err := git("commit", "--allow-empty", "-m", message); err != nil {
				return err
			}
			if err := git("push", "origin", target.Branch); err != nil {
				return err
			}
			pc.Logger().Infof("deployed to %s (%s)", target.Repository, target.Branch)
			return nil
		},
	}
}

// copyTree copies every regular file below src into dst.
func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, p)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		return os.WriteFile(target, data, 0o644)
	})
}
