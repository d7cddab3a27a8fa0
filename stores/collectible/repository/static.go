package repository

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"

	"golang.org/x/xerrors"

	bCtx "github.com/parodee/goapi/base/ctx"
	"github.com/parodee/goapi/base/log"
	"github.com/parodee/goapi/domain"
	"github.com/parodee/goapi/domain/collectible"
)

type staticRepo struct {
	dir string
}

// NewStatic serves raw records from snapshot files, one json array per
// collection at <dir>/<slug>.json. Interchangeable with the live repo
// for demos and for working offline.
func NewStatic(dir string) collectible.Repo {
	return &staticRepo{dir: dir}
}

func (r *staticRepo) FetchCollection(c bCtx.Ctx, slug string, limit int) ([]collectible.RawItem, error) {
	items, err := r.readSnapshot(c, slug)
	if err != nil {
		return nil, err
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items, nil
}

func (r *staticRepo) FetchItem(c bCtx.Ctx, chain domain.ChainName, contract domain.Address, identifier domain.TokenId) (*collectible.RawItem, error) {
	files, err := filepath.Glob(filepath.Join(r.dir, "*.json"))
	if err != nil {
		c.WithField("err", err).Error("filepath.Glob failed")
		return nil, err
	}
	for _, f := range files {
		slug := fileSlug(f)
		items, err := r.readSnapshot(c, slug)
		if err != nil {
			continue
		}
		for i := range items {
			if items[i].ResolvedId() != identifier.String() {
				continue
			}
			if items[i].Contract != nil && !items[i].Contract.Address.Equals(contract) {
				continue
			}
			return &items[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *staticRepo) readSnapshot(c bCtx.Ctx, slug string) ([]collectible.RawItem, error) {
	path := filepath.Join(r.dir, slug+".json")
	data, err := ioutil.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotFound
		}
		c.WithFields(log.Fields{
			"path": path,
			"err":  err,
		}).Error("ReadFile failed")
		return nil, err
	}
	items := []collectible.RawItem{}
	if err := json.Unmarshal(data, &items); err != nil {
		c.WithFields(log.Fields{
			"path": path,
			"err":  err,
		}).Error("json.Unmarshal failed")
		return nil, xerrors.Errorf("decode snapshot %s: %w", path, err)
	}
	return items, nil
}

func fileSlug(path string) string {
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}
