// Package files locates dataset files on disk.
//
// Discovery lists the files a Loader can read in a directory and picks the
// most recently modified one, so the data location may name either a file
// or a folder of periodic exports:
//
//	discovery := files.NewDiscovery(paths.BaseDir)
//	path, err := discovery.ResolveDataFile("data")
package files
