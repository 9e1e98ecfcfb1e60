package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	get "github.com/hashicorp/go-getter"

	"github.com/OCharnyshevich/voxel-world/internal/server/storage"
)

func fetchCmd(fs *flag.FlagSet) runFunc {
	src := fs.String("src", "", "save source: any go-getter url (git::, s3::, https://...tar.gz, local dir)")
	dst := fs.String("dst", "", "destination directory (default: -save-dir)")
	replace := fs.Bool("replace", false, "remove the destination first")
	return func(ctx context.Context, e *env) error {
		if *src == "" {
			return fmt.Errorf("source url required")
		}
		path := *dst
		if path == "" {
			path = e.cfg.SaveDir
		}
		if *replace {
			if err := os.RemoveAll(path); err != nil {
				return err
			}
		}
		pwd, err := os.Getwd()
		if err != nil {
			return err
		}

		e.log.Info("start downloading save", "src", *src, "dst", path)
		client := &get.Client{
			Ctx:  ctx,
			Src:  *src,
			Dst:  path,
			Pwd:  pwd,
			Mode: get.ClientModeDir,
		}
		if err := client.Get(); err != nil {
			return fmt.Errorf("fetch %s: %w", *src, err)
		}
		e.log.Info("done downloading save", "dst", path)

		// Only file-layout saves can be fetched; verify before indexing.
		st, err := storage.NewFileStore(path, e.log)
		if err != nil {
			return err
		}
		snap, err := st.Load()
		if err != nil {
			return fmt.Errorf("verify fetched save: %w", err)
		}

		ix, err := storage.OpenIndex(e.cfg.IndexPath)
		if err != nil {
			return err
		}
		defer ix.Close()
		if err := ix.Record(ctx, storage.EntryFor(snap, storage.BackendFile, path)); err != nil {
			return err
		}
		fmt.Printf("fetched world %s seed=%d edits=%d dir=%s\n", snap.WorldID, snap.Params.Seed, snap.Overlay.Len(), path)
		return nil
	}
}
