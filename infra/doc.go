// Package infra contains technical adapters such as the route and weather
// provider clients, the snapshot cache and metrics exporters. These packages
// should depend only on the interfaces defined in the core packages.
package infra
