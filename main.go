// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/goots/pom-deployer/cmd/pomdeployer"

func main() {
	cmd.Execute()
}
