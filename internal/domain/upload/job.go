package upload

import (
	"fmt"
	"os"
)

// AssetType names one of the six payloads attached to a media item.
type AssetType string

const (
	AssetVideo   AssetType = "video"
	AssetAudioEn AssetType = "audio_en"
	AssetAudioEs AssetType = "audio_es"
	AssetSubsEn  AssetType = "subs_en"
	AssetSubsEs  AssetType = "subs_es"
	AssetBanner  AssetType = "banner"
)

var assetExtensions = map[AssetType]string{
	AssetVideo:   ".mp4",
	AssetAudioEn: ".m4a",
	AssetAudioEs: ".m4a",
	AssetSubsEn:  ".vtt",
	AssetSubsEs:  ".vtt",
	AssetBanner:  ".jpg",
}

// StorageKey returns the deterministic object key for one asset of an item.
func StorageKey(itemID string, asset AssetType) string {
	return fmt.Sprintf("%s/%s%s", itemID, asset, assetExtensions[asset])
}

// StagedFile is a temporary local copy of an uploaded payload, written so
// the detached transfer can outlive the original request.
type StagedFile struct {
	Path string
	Size int64
}

// Files holds the six staged payloads of one submission. Dir owns every
// staged file; removing it releases the whole set.
type Files struct {
	Dir     string
	Video   StagedFile
	AudioEn StagedFile
	AudioEs StagedFile
	SubsEn  StagedFile
	SubsEs  StagedFile
	Banner  StagedFile
}

type stagedAsset struct {
	kind AssetType
	file StagedFile
}

func (f Files) assets() []stagedAsset {
	return []stagedAsset{
		{AssetVideo, f.Video},
		{AssetAudioEn, f.AudioEn},
		{AssetAudioEs, f.AudioEs},
		{AssetSubsEn, f.SubsEn},
		{AssetSubsEs, f.SubsEs},
		{AssetBanner, f.Banner},
	}
}

// missing returns the asset types that were not staged or are empty.
func (f Files) missing() []AssetType {
	var out []AssetType
	for _, a := range f.assets() {
		if a.file.Path == "" || a.file.Size <= 0 {
			out = append(out, a.kind)
		}
	}
	return out
}

// Cleanup removes the staging directory and everything in it.
func (f Files) Cleanup() error {
	if f.Dir == "" {
		return nil
	}
	return os.RemoveAll(f.Dir)
}

// job is one detached transfer unit. It exists only for the duration of the
// asynchronous upload and is destroyed after every asset was attempted.
type job struct {
	itemID string
	files  Files
}
