package utils

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"
)

// ErrExec runs the functions concurrently and returns the first error
func ErrExec(functions ...func() error) error {
	group, _ := errgroup.WithContext(context.Background())
	for _, one := range functions {
		group.Go(one)
	}

	return group.Wait()
}

// ErrExecSequential runs the functions in order, collecting every error
func ErrExecSequential(functions ...func() error) error {
	var multErr error
	for _, one := range functions {
		err := one()
		if err != nil {
			multErr = multierror.Append(multErr, err)
		}
	}

	return multErr
}

// ErrExecFormat wraps the error returned by function into format
func ErrExecFormat(format string, function func() error) func() error {
	return func() error {
		if err := function(); err != nil {
			return fmt.Errorf(format, err)
		}

		return nil
	}
}
