// Command flowroute is a flag-based CLI dispatcher over the eight
// public routing entry points, one subcommand per operation, in the
// shape of jblindsay/go-spatial's command-map dispatch table.
package main
