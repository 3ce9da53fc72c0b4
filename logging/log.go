/*
 * MIT License
 *
 * Copyright (c) 2018-2020 Frank Kopp
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

// Package logging is a helper for the "github.com/op/go-logging" package
// to reduce the lines of code within each go file to one line.
// The functions return Logger instances which are configured with
// the necessary backends and formatters.
package logging

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/frankkopp/minigo/config"
)

// Out is a German-locale printf-style message printer, used for grouped
// thousands separators in progress/statistics output (e.g. node counts).
var Out = message.NewPrinter(language.German)

var (
	standardFormat = logging.MustStringFormatter(`%{time:15:04:05.000} %{shortpkg:-8.8s}:%{shortfile:-14.14s} %{level:-7.7s}:  %{message}`)

	mu      sync.Mutex
	loggers = map[string]*logging.Logger{}

	protocolLogFilePath string
	protocolLogFile     *os.File
)

func init() {
	programName, _ := os.Executable()
	exePath := filepath.Dir(programName)
	exeName := strings.TrimSuffix(filepath.Base(programName), ".exe")
	protocolLogFilePath = exePath + "/../logs/" + exeName + "_protocol.log"
}

// levelFor picks the configured log level for a named logger. Package names
// with a dedicated config knob get it; everything else (e.g. "types",
// "position", "codec", "reservoir", "engine") uses the general LogLevel.
func levelFor(name string) int {
	switch name {
	case "mcts":
		return config.MctsLogLevel
	case "mate":
		return config.MateLogLevel
	case "test":
		return config.TestLogLevel
	default:
		return config.LogLevel
	}
}

// GetLog returns a named, preconfigured Logger with an os.Stdout backend and
// the standard time/package/level/message format. Loggers are created once
// per name and reconfigured (not recreated) on subsequent calls, so callers
// may safely call GetLog(name) once per package at var-init time.
func GetLog(name string) *logging.Logger {
	mu.Lock()
	defer mu.Unlock()

	logger, ok := loggers[name]
	if !ok {
		logger = logging.MustGetLogger(name)
		loggers[name] = logger
	}

	backend1 := logging.NewLogBackend(os.Stdout, "", log.Lmsgprefix)
	backend1Formatter := logging.NewBackendFormatter(backend1, standardFormat)
	backEnd := logging.AddModuleLevel(backend1Formatter)
	backEnd.SetLevel(logging.Level(levelFor(name)), "")
	logger.SetBackend(backEnd)
	return logger
}

// GetTestLog returns the shared logger used by _test.go files across the
// module, leveled from config.TestLogLevel.
func GetTestLog() *logging.Logger {
	return GetLog("test")
}

// GetProtocolLog returns a Logger dedicated to the line-oriented front end
// protocol (cmd/minigo), logging every request/response to os.Stdout and,
// when the file can be opened, appending to <exe dir>/../logs/<exe
// name>_protocol.log. No directory is created.
// Format is kept minimal: "time PROTO <line>".
func GetProtocolLog() *logging.Logger {
	mu.Lock()
	protocolLog, ok := loggers["protocol"]
	if !ok {
		protocolLog = logging.MustGetLogger("protocol")
		loggers["protocol"] = protocolLog
	}
	mu.Unlock()

	protoFormat := logging.MustStringFormatter(`%{time:15:04:05.000} PROTO %{message}`)
	backend1 := logging.NewLogBackend(os.Stdout, "", log.Lmsgprefix)
	backend1Formatter := logging.NewBackendFormatter(backend1, protoFormat)
	backEnd1 := logging.AddModuleLevel(backend1Formatter)
	backEnd1.SetLevel(logging.DEBUG, "")

	var err error
	protocolLogFile, err = os.OpenFile(protocolLogFilePath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Println("Protocol logfile could not be created", err)
		protocolLog.SetBackend(backEnd1)
		return protocolLog
	}

	backend2 := logging.NewLogBackend(protocolLogFile, "", log.Lmsgprefix)
	backend2Formatter := logging.NewBackendFormatter(backend2, protoFormat)
	backEnd2 := logging.AddModuleLevel(backend2Formatter)
	backEnd2.SetLevel(logging.DEBUG, "")
	multi := logging.SetBackend(backEnd1, backEnd2)
	protocolLog.SetBackend(multi)
	return protocolLog
}
