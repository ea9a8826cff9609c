//go:build mage

// Copyright 2022
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"os"

	"github.com/magefile/mage/sh"
)

const (
	binaryName  = "stock-metrics"
	packageName = "."
)

// allow user to override go executable by running as GOEXE=xxx make ... on unix-like systems
var goexe = "go"

func init() {
	if exe := os.Getenv("GOEXE"); exe != "" {
		goexe = exe
	}
}

func Build() error {
	fmt.Println("Building...")
	return sh.RunV(goexe, "build", "-o", binaryName, packageName)
}

func Test() error {
	return sh.RunV(goexe, "test", "./...")
}

func Vet() error {
	return sh.RunV(goexe, "vet", "./...")
}

func Clean() {
	fmt.Println("Cleaning...")
	os.RemoveAll(binaryName)
}
