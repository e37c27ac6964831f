// Command flowsim runs and checks item-flow scenarios.
package main

import "github.com/sarchlab/flowsim/cmd"

func main() {
	cmd.Execute()
}
