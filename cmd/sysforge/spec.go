package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"go.uber.org/zap"
)

// loadSpec resolves a spec argument: literal text, or the contents of a
// file when prefixed with @.
func loadSpec(arg string) (string, error) {
	if !strings.HasPrefix(arg, "@") {
		if strings.TrimSpace(arg) == "" {
			return "", fmt.Errorf("specification is empty")
		}
		return arg, nil
	}

	path := strings.TrimPrefix(arg, "@")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read spec file %s: %w", path, err)
	}
	spec := strings.TrimSpace(string(data))
	if spec == "" {
		return "", fmt.Errorf("spec file %s is empty", path)
	}
	return spec, nil
}

// composeUp builds and starts the generated system with docker-compose,
// streaming its output to the terminal.
func composeUp(dir string) error {
	if _, err := os.Stat(dir + "/docker-compose.yml"); err != nil {
		return fmt.Errorf("no docker-compose.yml in %s", dir)
	}

	logger.Info("starting generated system", zap.String("dir", dir))
	cmd := exec.Command("docker-compose", "up", "--build")
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	return cmd.Run()
}
