package archive

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"tourcast/internal/domain/tour"
)

// Entry is one saved tour: the script plus the exported audio file.
type Entry struct {
	Script    tour.Script `json:"script"`
	AudioPath string      `json:"audio_path,omitempty"`
	SavedAt   time.Time   `json:"saved_at"`
}

type index struct {
	Entries     []Entry   `json:"entries"`
	LastUpdated time.Time `json:"last_updated"`
}

// Archive keeps generated tours on disk so they can be listed and
// replayed later.
type Archive struct {
	dir       string
	indexFile string
}

func New(dir string) *Archive {
	if err := os.MkdirAll(dir, 0755); err != nil {
		logrus.WithError(err).Warn("Failed to create archive directory")
	}

	return &Archive{
		dir:       dir,
		indexFile: filepath.Join(dir, "tours.json"),
	}
}

// Save stores the script, replacing any entry with the same ID.
func (a *Archive) Save(script *tour.Script, audioPath string) (*Entry, error) {
	idx, err := a.load()
	if err != nil {
		return nil, err
	}

	entry := Entry{
		Script:    *script,
		AudioPath: audioPath,
		SavedAt:   time.Now(),
	}

	replaced := false
	for i := range idx.Entries {
		if idx.Entries[i].Script.ID == script.ID {
			idx.Entries[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		idx.Entries = append(idx.Entries, entry)
	}

	if err := a.store(idx); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"tour_id":  script.ID,
		"location": script.Location,
		"file":     a.indexFile,
	}).Info("Saved tour to archive")

	return &entry, nil
}

// List returns all saved tours, newest first.
func (a *Archive) List() ([]Entry, error) {
	idx, err := a.load()
	if err != nil {
		return nil, err
	}

	entries := idx.Entries
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}

// Get looks a tour up by its full ID or a unique prefix.
func (a *Archive) Get(id string) (*Entry, error) {
	idx, err := a.load()
	if err != nil {
		return nil, err
	}

	var match *Entry
	for i := range idx.Entries {
		e := &idx.Entries[i]
		if e.Script.ID == id {
			return e, nil
		}
		if len(id) >= 4 && len(e.Script.ID) >= len(id) && e.Script.ID[:len(id)] == id {
			if match != nil {
				return nil, fmt.Errorf("tour ID prefix '%s' is ambiguous", id)
			}
			match = e
		}
	}

	if match == nil {
		return nil, fmt.Errorf("tour '%s' not found in archive", id)
	}
	return match, nil
}

// Remove deletes a saved tour and its audio file.
func (a *Archive) Remove(id string) error {
	idx, err := a.load()
	if err != nil {
		return err
	}

	kept := idx.Entries[:0]
	var removed *Entry
	for i := range idx.Entries {
		if idx.Entries[i].Script.ID == id {
			e := idx.Entries[i]
			removed = &e
			continue
		}
		kept = append(kept, idx.Entries[i])
	}
	if removed == nil {
		return fmt.Errorf("tour '%s' not found in archive", id)
	}
	idx.Entries = kept

	if removed.AudioPath != "" {
		if err := os.Remove(removed.AudioPath); err != nil && !os.IsNotExist(err) {
			logrus.WithError(err).Warn("Failed to remove tour audio file")
		}
	}

	return a.store(idx)
}

// Info returns details about the archive for status output.
func (a *Archive) Info() (map[string]interface{}, error) {
	info := make(map[string]interface{})

	stat, err := os.Stat(a.indexFile)
	if err != nil {
		info["exists"] = false
		return info, nil
	}

	idx, err := a.load()
	if err != nil {
		return nil, err
	}

	info["exists"] = true
	info["file"] = a.indexFile
	info["size"] = stat.Size()
	info["last_modified"] = stat.ModTime()
	info["tours"] = len(idx.Entries)
	return info, nil
}

func (a *Archive) load() (*index, error) {
	file, err := os.Open(a.indexFile)
	if os.IsNotExist(err) {
		return &index{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open archive index: %w", err)
	}
	defer file.Close()

	var idx index
	if err := json.NewDecoder(file).Decode(&idx); err != nil {
		return nil, fmt.Errorf("failed to decode archive index: %w", err)
	}
	return &idx, nil
}

func (a *Archive) store(idx *index) error {
	idx.LastUpdated = time.Now()

	file, err := os.Create(a.indexFile)
	if err != nil {
		return fmt.Errorf("failed to create archive index: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(idx); err != nil {
		return fmt.Errorf("failed to encode archive index: %w", err)
	}
	return nil
}
