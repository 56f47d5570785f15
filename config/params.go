// Package config loads and saves the coverage pipeline's parameter file:
// a plain-text, whitespace-separated key-then-values format, one entry per
// line. Params is the single immutable configuration value threaded through
// the pipeline entry point; nothing here is package-level mutable state.
package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/Gizlim/CoveragePlanner/planerr"
)

// Params is the immutable configuration for one pipeline run.
type Params struct {
	ImagePath string

	RobotWidth, RobotHeight               uint
	OpenKernelWidth, OpenKernelHeight     uint
	DilateKernelWidth, DilateKernelHeight uint

	SweepStep int

	ShowCells        bool
	MouseSelectStart bool
	StartX, StartY   int

	SubdivisionDist uint

	ManualOrientation bool
	CropRegion        bool
}

// Default returns the parameter set the `config` subcommand writes out:
// conservative values that produce a usable plan on a typical occupancy
// map without any hand tuning.
func Default() Params {
	return Params{
		ImagePath:          "map.png",
		RobotWidth:         10,
		RobotHeight:        10,
		OpenKernelWidth:    5,
		OpenKernelHeight:   5,
		DilateKernelWidth:  5,
		DilateKernelHeight: 5,
		SweepStep:          10,
		ShowCells:          false,
		MouseSelectStart:   false,
		StartX:             0,
		StartY:             0,
		SubdivisionDist:    0,
		ManualOrientation:  false,
		CropRegion:         false,
	}
}

// Validate rejects parameter sets the pipeline cannot run with, as
// InvalidParameter errors.
func (p Params) Validate() error {
	if p.ImagePath == "" {
		return planerr.New(planerr.InvalidParameter, "config", "IMAGE_PATH is empty")
	}
	if p.SweepStep <= 0 {
		return planerr.New(planerr.InvalidParameter, "config", "SWEEP_STEP must be > 0")
	}
	if p.RobotWidth == 0 || p.RobotHeight == 0 {
		return planerr.New(planerr.InvalidParameter, "config", "ROBOT_SIZE must be > 0 in both dimensions")
	}
	return nil
}

// Load parses a parameter file: whitespace separated "KEY value...", one
// entry per line. Unknown keys are ignored; absent keys retain Default()
// values.
func Load(path string) (Params, error) {
	f, err := os.Open(path)
	if err != nil {
		return Params{}, planerr.New(planerr.InvalidParameter, "config", err.Error())
	}
	defer f.Close()
	return LoadReader(f)
}

// LoadReader parses a parameter file read from r, in the same format Load
// reads from disk. Exposed for tests and for callers that already hold the
// file open.
func LoadReader(r io.Reader) (Params, error) {
	p := Default()
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)

	next := func() (string, bool) {
		if !sc.Scan() {
			return "", false
		}
		return sc.Text(), true
	}
	nextUint := func() (uint, error) {
		s, ok := next()
		if !ok {
			return 0, fmt.Errorf("unexpected end of file")
		}
		v, err := strconv.ParseUint(s, 10, 32)
		return uint(v), err
	}
	nextInt := func() (int, error) {
		s, ok := next()
		if !ok {
			return 0, fmt.Errorf("unexpected end of file")
		}
		return strconv.Atoi(s)
	}
	nextBool := func() (bool, error) {
		s, ok := next()
		if !ok {
			return false, fmt.Errorf("unexpected end of file")
		}
		v, err := strconv.ParseUint(s, 10, 8)
		return v != 0, err
	}

	for {
		key, ok := next()
		if !ok {
			break
		}
		var perr error
		switch key {
		case "IMAGE_PATH":
			p.ImagePath, ok = next()
		case "ROBOT_SIZE":
			p.RobotWidth, perr = nextUint()
			if perr == nil {
				p.RobotHeight, perr = nextUint()
			}
		case "MORPH_SIZE":
			p.OpenKernelWidth, perr = nextUint()
			if perr == nil {
				p.OpenKernelHeight, perr = nextUint()
			}
		case "OBSTACLE_INFLATION":
			p.DilateKernelWidth, perr = nextUint()
			if perr == nil {
				p.DilateKernelHeight, perr = nextUint()
			}
		case "SWEEP_STEP":
			p.SweepStep, perr = nextInt()
		case "SHOW_CELLS":
			p.ShowCells, perr = nextBool()
		case "MOUSE_SELECT_START":
			p.MouseSelectStart, perr = nextBool()
		case "START_POS":
			p.StartX, perr = nextInt()
			if perr == nil {
				p.StartY, perr = nextInt()
			}
		case "SUBDIVISION_DIST":
			p.SubdivisionDist, perr = nextUint()
		case "MANUAL_ORIENTATION":
			p.ManualOrientation, perr = nextBool()
		case "CROP_REGION":
			p.CropRegion, perr = nextBool()
		default:
			// Unknown keys are ignored; their values, if any, are left in
			// the token stream and reinterpreted by the next iteration.
		}
		if perr != nil {
			return Params{}, planerr.New(planerr.InvalidParameter, "config",
				fmt.Sprintf("%s: %v", key, perr))
		}
	}
	return p, nil
}

// Save writes p to path in the same key-then-values format Load reads.
func Save(path string, p Params) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "IMAGE_PATH %s\n", p.ImagePath)
	fmt.Fprintf(w, "ROBOT_SIZE %d %d\n", p.RobotWidth, p.RobotHeight)
	fmt.Fprintf(w, "MORPH_SIZE %d %d\n", p.OpenKernelWidth, p.OpenKernelHeight)
	fmt.Fprintf(w, "OBSTACLE_INFLATION %d %d\n", p.DilateKernelWidth, p.DilateKernelHeight)
	fmt.Fprintf(w, "SWEEP_STEP %d\n", p.SweepStep)
	fmt.Fprintf(w, "SHOW_CELLS %d\n", boolToInt(p.ShowCells))
	fmt.Fprintf(w, "MOUSE_SELECT_START %d\n", boolToInt(p.MouseSelectStart))
	fmt.Fprintf(w, "START_POS %d %d\n", p.StartX, p.StartY)
	fmt.Fprintf(w, "SUBDIVISION_DIST %d\n", p.SubdivisionDist)
	fmt.Fprintf(w, "MANUAL_ORIENTATION %d\n", boolToInt(p.ManualOrientation))
	fmt.Fprintf(w, "CROP_REGION %d\n", boolToInt(p.CropRegion))
	return w.Flush()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
