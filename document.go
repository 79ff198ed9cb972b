package reel

import (
	"encoding/json"
	"fmt"
)

// Load parses a project document of any schema version. The document is
// migrated, validated and its segment times recalculated. An audio track is
// loaded as AudioMissing because the playback handle is not persisted; the
// host marks it ready once it has re-attached the file.
func Load(data []byte) (*Project, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("reel: parse document: %w", err)
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, &MigrationError{Msg: "top level is not an object"}
	}
	from, _ := documentVersion(obj)
	migrated, err := Migrate(obj)
	if err != nil {
		return nil, err
	}
	if from != CurrentVersion {
		Logger().Debug("reel: document migrated", "from", from, "to", CurrentVersion)
	}
	p, err := Validate(migrated)
	if err != nil {
		return nil, err
	}
	p.Segments = RecalculateTimes(p.Segments)
	if p.Audio != nil {
		p.Audio.Status = AudioMissing
	}
	return p, nil
}

// Save encodes p as an indented current-version document. Runtime-only
// fields such as the audio handle are dropped. Segment times are written
// recalculated.
func Save(p *Project) ([]byte, error) {
	out := p.Clone()
	out.Segments = RecalculateTimes(out.Segments)
	data, err := json.MarshalIndent(document{Version: CurrentVersion, Project: *out}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("reel: encode document: %w", err)
	}
	return data, nil
}
