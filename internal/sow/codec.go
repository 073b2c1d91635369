package sow

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// recordFile is the on-disk shape of a record. Keys follow the wizard's
// field names so hand-written files read naturally.
type recordFile struct {
	EngagementType          string            `yaml:"engagementType"`
	ClientInfo              ClientInfo        `yaml:"clientInfo"`
	ServiceProvider         ServiceProvider   `yaml:"serviceProvider"`
	ProjectDetails          ProjectDetails    `yaml:"projectDetails"`
	RetainerDetails         *Retainer         `yaml:"retainerDetails,omitempty"`
	MultipleProjectsDetails *MultipleProjects `yaml:"multipleProjectsDetails,omitempty"`
	Terms                   Terms             `yaml:"terms"`
}

// LoadRecord reads a YAML (or JSON) record file.
func LoadRecord(path string, d Defaults) (*EngagementRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read record: %w", err)
	}
	rec, err := DecodeRecord(bytes.NewReader(data), d)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rec, nil
}

// DecodeRecord builds a record from d overlaid with the document in r.
// Keys absent from the document keep their default values.
func DecodeRecord(r io.Reader, d Defaults) (*EngagementRecord, error) {
	base := NewRecord(d)
	f := recordFile{
		ServiceProvider: base.Provider,
		ProjectDetails:  base.Project,
		Terms:           base.Terms,
	}

	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse record: %w", err)
	}

	t, err := ParseEngagementType(f.EngagementType)
	if err != nil {
		return nil, err
	}

	rec := &EngagementRecord{
		Client:   f.ClientInfo,
		Provider: f.ServiceProvider,
		Project:  f.ProjectDetails,
		Terms:    f.Terms,
	}
	rec.Project.Deliverables = dedupe(rec.Project.Deliverables)
	rec.SetRevisions(rec.Terms.Revisions)
	if err := rec.SetTotalAmount(rec.Project.Fees.TotalAmount); err != nil {
		return nil, err
	}

	switch t {
	case EngagementRetainer:
		ret := &Retainer{}
		if f.RetainerDetails != nil {
			*ret = *f.RetainerDetails
		}
		rec.SetEngagement(ret)
	case EngagementMultipleProjects:
		mp := &MultipleProjects{Projects: []Project{}}
		if f.MultipleProjectsDetails != nil {
			*mp = *f.MultipleProjectsDetails
			mp.Projects = append([]Project{}, mp.Projects...)
		}
		rec.SetEngagement(mp)
	default:
		if err := rec.SetEngagementType(t); err != nil {
			return nil, err
		}
	}
	return rec, nil
}

// EncodeRecord writes rec in the file shape DecodeRecord reads. Only the
// active engagement variant's details are written.
func EncodeRecord(w io.Writer, rec *EngagementRecord) error {
	f := recordFile{
		EngagementType:  string(rec.EngagementType()),
		ClientInfo:      rec.Client,
		ServiceProvider: rec.Provider,
		ProjectDetails:  rec.Project,
		Terms:           rec.Terms,
	}
	if ret, ok := rec.RetainerDetails(); ok {
		f.RetainerDetails = ret
	}
	if mp, ok := rec.MultipleProjectsDetails(); ok {
		f.MultipleProjectsDetails = mp
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&f); err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	return enc.Close()
}
