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

// Package config holds globally available configuration variables which are
// either set by defaults or read from a config file.
package config

import (
	"fmt"
	"log"
	"reflect"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/frankkopp/minigo/util"
)

// globally available config values.
var (
	// ConfFile holds the path to the used config file (relative to working directory).
	ConfFile = "./config.toml"

	// LogLevel defines the general log level - can be overwritten by the config file.
	LogLevel = 5

	// MctsLogLevel defines the log level of the mcts package's logger.
	MctsLogLevel = 5

	// MateLogLevel defines the log level of the mate package's logger.
	MateLogLevel = 5

	// TestLogLevel defines the test log level.
	TestLogLevel = 5

	// Settings is the global configuration read in from file.
	Settings conf

	initialized = false
)

type conf struct {
	Log       logConfiguration
	Mcts      mctsConfiguration
	Mate      mateConfiguration
	Reservoir reservoirConfiguration
}

// Setup reads the configuration file and applies settings from it on top of
// the defaults set by each sub-configuration's init().
func Setup() {
	if initialized {
		return
	}

	path, _ := util.ResolveFile(ConfFile)
	if _, err := toml.DecodeFile(path, &Settings); err != nil {
		log.Println("Config file not found. Using defaults. (", err, ")")
	}

	setupLogLvl()
	setupMcts()
	setupMate()
	setupReservoir()

	initialized = true
}

// String prints out the current configuration settings and values using
// reflection over each sub-configuration struct.
func (settings *conf) String() string {
	var c strings.Builder
	c.WriteString("Mcts Config:\n")
	writeFields(&c, &settings.Mcts)
	c.WriteString("\nMate Config:\n")
	writeFields(&c, &settings.Mate)
	c.WriteString("\nReservoir Config:\n")
	writeFields(&c, &settings.Reservoir)
	return c.String()
}

func writeFields(c *strings.Builder, s interface{}) {
	v := reflect.ValueOf(s).Elem()
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)
		c.WriteString(fmt.Sprintf("%-2d: %-22s %-8s = %v\n", i, t.Field(i).Name, f.Type(), f.Interface()))
	}
}
