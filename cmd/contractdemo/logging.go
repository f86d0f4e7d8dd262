// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"io"
	"log/slog"
	"time"

	"github.com/lmittmann/tint"
)

func prettyLogger(dest io.Writer, level slog.Level) *slog.Logger {
	return slog.New(tint.NewHandler(dest, &tint.Options{
		TimeFormat: time.TimeOnly,
		Level:      level,
	}))
}
