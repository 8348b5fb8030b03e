// Package cache keeps the catalog snapshot and translation catalogs
// available offline. A Manager loads the last persisted snapshot from
// storage before any network activity, then refreshes from the upstream
// feed in the background, publishing a fetched snapshot only when it is
// strictly newer than the one already being served.
package cache
