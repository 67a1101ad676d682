/* main.go
 * Entry point for the Horizons site. See `horizons --help` for the available commands.
 */

package main

import "horizons-site/cmd"

func main() {
	cmd.Execute()
}
