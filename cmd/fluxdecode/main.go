// Command fluxdecode reconstructs floppy-disk logical sectors from raw
// magnetic-flux recordings: KryoFlux stream captures or SuperCard Pro
// traces.
package main

func main() {
	Execute()
}
