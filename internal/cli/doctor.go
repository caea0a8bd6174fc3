package cli

import (
	"fmt"
	"os"

	ps "github.com/mitchellh/go-ps"

	"github.com/timeblock-app/timeblock/internal/constants"
	"github.com/timeblock-app/timeblock/internal/validation"
)

type DoctorCmd struct{}

func (c *DoctorCmd) Run(ctx *Context) error {
	ok := true

	check := func(name string, err error) {
		if err != nil {
			ok = false
			fmt.Printf("✗ %s: %v\n", name, err)
		} else {
			fmt.Printf("✓ %s\n", name)
		}
	}

	check("storage reachable", ctx.Store.Load())

	windows, err := ctx.Store.GetAllWindows()
	check("windows readable", err)
	if err == nil {
		result := validation.New().ValidateWindows(windows)
		if result.HasConflicts() {
			ok = false
			fmt.Printf("✗ window configuration:\n%s", result.FormatReport())
		} else {
			fmt.Printf("✓ window configuration (%d window(s))\n", len(windows))
		}
	}

	_, err = ctx.Store.GetAllBlocks()
	check("blocks readable", err)

	check("no duplicate process", checkDuplicateProcess())

	if !ok {
		return fmt.Errorf("doctor found problems")
	}
	fmt.Println("All checks passed.")
	return nil
}

// checkDuplicateProcess scans the process table for another running
// timeblock instance. Two writers against the same sqlite file is the
// most common source of lock errors.
func checkDuplicateProcess() error {
	procs, err := ps.Processes()
	if err != nil {
		return fmt.Errorf("cannot read process table: %w", err)
	}
	self := os.Getpid()
	for _, p := range procs {
		if p.Pid() != self && p.Executable() == constants.AppName {
			return fmt.Errorf("another %s process is running (pid %d)", constants.AppName, p.Pid())
		}
	}
	return nil
}
