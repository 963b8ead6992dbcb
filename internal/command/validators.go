// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"fmt"

	"github.com/mwmdiff/mwmdiff/internal/output"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// OutputValidator accepts the empty string and any output.Format.
func OutputValidator(value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("must be a string, got %T", value)
	}
	if s == "" {
		return nil
	}
	if _, err := output.ParseFormat(s); err != nil {
		return fmt.Errorf("must be one of %v", output.Formats())
	}
	return nil
}

// DepthValidator requires a positive depth.
func DepthValidator(value any) error {
	d, ok := value.(int)
	if !ok {
		return fmt.Errorf("must be an int, got %T", value)
	}
	if d <= 0 {
		return fmt.Errorf("must be greater than zero, got %d", d)
	}
	return nil
}
