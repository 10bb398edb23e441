// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"time"

	"github.com/libreskies/libreskies/utility/kar"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/mmap"
)

func currentUserName() string {
	u, err := user.Current()
	if err != nil {
		return "unknown"
	}
	if u.Name != "" {
		return u.Name
	}
	return u.Username
}

var (
	author   = flag.String("author", currentUserName(), "Set the author of the package when compressing")
	version  = flag.Int64("version", 1, "Archive version number to create it with")
	extract  = flag.String("e", "", "Extract the given archive into the destination directory")
	compress = flag.String("c", "", "Compress the given file/folder")
	list     = flag.String("l", "", "List the contents of the given archive")
	dst      = flag.String("f", "out.kar", "Destination file when compressing, directory when extracting")
	silent   = flag.Bool("s", false, "Silent")
)

func main() {
	flag.Parse()
	if *silent {
		log.SetLevel(log.WarnLevel)
	}

	var ops int
	for _, op := range []string{*extract, *compress, *list} {
		if op != "" {
			ops++
		}
	}

	var err error
	switch {
	case ops == 0:
		flag.PrintDefaults()
		return
	case ops > 1:
		err = errors.New("only one operation at a time")
	case *compress != "":
		err = compressFiles(*compress, *dst)
	case *extract != "":
		err = extractFiles(*extract, *dst)
	case *list != "":
		err = listFiles(*list)
	}
	if err != nil {
		log.WithError(err).Fatal("kar failed")
	}
}

func compressFiles(src, dstFile string) error {
	if _, err := os.Stat(dstFile); err == nil {
		return errors.New("destination file exists, will not overwrite")
	}

	var filesToCompress []string
	if err := filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		filesToCompress = append(filesToCompress, path)
		return nil
	}); err != nil {
		return err
	}

	builder, err := kar.NewBuilder(kar.Header{
		Author:      *author,
		DateCreated: time.Now().Unix(),
		Version:     *version,
	})
	if err != nil {
		return err
	}
	defer builder.Close()

	for _, path := range filesToCompress {
		name, err := filepath.Rel(src, path)
		if err != nil || name == "." {
			name = filepath.Base(path)
		}
		name = filepath.ToSlash(name)

		if err := addFile(builder, name, path); err != nil {
			return errors.Wrap(err, path)
		}
		log.WithField("file", name).Info("Added")
	}

	out, err := os.Create(dstFile)
	if err != nil {
		return err
	}
	written, err := builder.WriteTo(out)
	if err != nil {
		out.Close()
		return err
	}
	log.WithFields(log.Fields{"files": len(filesToCompress), "bytes": written}).Info("Archive written")
	return out.Close()
}

func addFile(builder *kar.Builder, name, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return builder.Add(name, f)
}

func openArchive(path string) (*kar.Archive, io.Closer, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, nil, err
	}
	archive, err := kar.Open(r)
	if err != nil {
		r.Close()
		return nil, nil, errors.Wrap(err, path)
	}
	return archive, r, nil
}

func listFiles(path string) error {
	archive, closer, err := openArchive(path)
	if err != nil {
		return err
	}
	defer closer.Close()

	header := archive.Header()
	log.WithFields(log.Fields{
		"author":  header.Author,
		"version": header.Version,
		"created": time.Unix(header.DateCreated, 0),
	}).Info(path)

	for _, name := range archive.Names() {
		entry, _ := header.Find(name)
		fmt.Printf("%10d %10d %s\n", entry.Size, entry.CompressedSize, name)
	}
	return nil
}

func extractFiles(path, dstDir string) error {
	archive, closer, err := openArchive(path)
	if err != nil {
		return err
	}
	defer closer.Close()

	if dstDir == "out.kar" {
		dstDir = "."
	}

	for _, name := range archive.Names() {
		target := filepath.Join(dstDir, filepath.FromSlash(name))
		if rel, err := filepath.Rel(dstDir, target); err != nil || strings.HasPrefix(rel, "..") {
			return errors.Errorf("%s escapes the destination directory", name)
		}
		if err := extractFile(archive, name, target); err != nil {
			return errors.Wrap(err, name)
		}
		log.WithField("file", target).Info("Extracted")
	}
	return nil
}

func extractFile(archive *kar.Archive, name, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	r, err := archive.Open(name)
	if err != nil {
		return err
	}
	out, err := os.Create(target)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
