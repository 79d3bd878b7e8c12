package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

const (
	envGridsDir = "ECLGRID_GRIDS_DIR"
	gridExt     = ".egrid"
)

// stdinIsTTY is a small seam for tests.
var stdinIsTTY = isTTY

// resolveSynthOut picks the output path for synth: the explicit flag, or
// <grids dir>/<name>.EGRID, or ./out/<name>.EGRID. The parent directory is
// created.
func resolveSynthOut(outFlag, name, dirFlag string) (string, error) {
	outFlag = strings.TrimSpace(outFlag)
	if outFlag != "" {
		outPath := filepath.Clean(outFlag)
		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			return "", err
		}
		return outPath, nil
	}

	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsRune(name, filepath.Separator) {
		return "", fmt.Errorf("invalid grid name: %q", name)
	}

	outDir := gridsDirOrEnv(dirFlag)
	if outDir == "" {
		outDir = filepath.Join(".", "out")
	}
	outPath := filepath.Join(outDir, strings.ToUpper(name)+".EGRID")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}
	return outPath, nil
}

func gridsDirOrEnv(dirFlag string) string {
	if dir := strings.TrimSpace(dirFlag); dir != "" {
		return dir
	}
	return strings.TrimSpace(os.Getenv(envGridsDir))
}

func resolveGridPath(gridFlag, dirFlag string, stdin io.Reader, stderr io.Writer) (string, error) {
	gridFlag = strings.TrimSpace(gridFlag)
	if gridFlag != "" {
		return filepath.Clean(gridFlag), nil
	}

	dir := gridsDirOrEnv(dirFlag)
	if dir == "" {
		return "", fmt.Errorf("--grid or --grids-dir is required unless %s is set", envGridsDir)
	}

	grids, err := discoverGrids(dir)
	if err != nil {
		return "", err
	}
	switch len(grids) {
	case 0:
		return "", fmt.Errorf("no .EGRID files found in %s", dir)
	case 1:
		_, _ = fmt.Fprintf(stderr, "eclgrid: using grid %s\n", grids[0])
		return grids[0], nil
	default:
		if !stdinIsTTY() {
			return "", fmt.Errorf(
				"%d grids found in %s but stdin is not interactive; set --grid",
				len(grids), dir,
			)
		}
		return selectGridInteractively(dir, grids, stdin, stderr)
	}
}

// discoverGrids lists the .EGRID files (any case) directly under dir, sorted.
func discoverGrids(dir string) ([]string, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("grids directory is empty")
	}
	st, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("grids path is not a directory: %s", dir)
	}

	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	grids := make([]string, 0, len(ents))
	for _, e := range ents {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(strings.ToLower(name), gridExt) {
			continue
		}
		grids = append(grids, filepath.Join(dir, name))
	}
	sort.Strings(grids)
	return grids, nil
}

func selectGridInteractively(dir string, grids []string, stdin io.Reader, stderr io.Writer) (string, error) {
	if len(grids) == 0 {
		return "", fmt.Errorf("no grids available in %s", dir)
	}

	_, _ = fmt.Fprintf(stderr, "eclgrid: select a grid from %s\n", dir)
	for i, g := range grids {
		_, _ = fmt.Fprintf(stderr, "%d. %s\n", i+1, filepath.Base(g))
	}

	reader := bufio.NewReader(stdin)
	for {
		_, _ = fmt.Fprintf(stderr, "eclgrid: enter selection [1-%d]: ", len(grids))
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			if errors.Is(err, io.EOF) {
				return "", errors.New("no selection provided on stdin; set --grid")
			}
			continue
		}

		idx, convErr := strconv.Atoi(line)
		if convErr != nil || idx < 1 || idx > len(grids) {
			_, _ = fmt.Fprintf(stderr, "eclgrid: invalid selection %q\n", line)
			if errors.Is(err, io.EOF) {
				return "", errors.New("invalid selection provided on stdin; set --grid")
			}
			continue
		}
		return grids[idx-1], nil
	}
}

func isTTY() bool {
	st, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (st.Mode() & os.ModeCharDevice) != 0
}
