// Package discovery finds a stream URL for every Home Assistant camera.
//
// A run builds the camera catalog from the entity states, then offers
// candidates from three sources in fixed priority order: go2rtc stream
// servers, the UniFi Protect integration and the entities' own attributes.
// The first source to match an entity binds it for good. Any source that
// fails contributes nothing and the run carries on.
package discovery

import (
	"context"
	"errors"
	"log/slog"

	errs "auto-monocle/internal/errors"
	"auto-monocle/internal/logging"
	"auto-monocle/pkg/models"
)

// Platform is the set of read-only queries discovery needs.
type Platform interface {
	GetStates(ctx context.Context) ([]models.State, error)
	GetConfigEntries(ctx context.Context) ([]models.ConfigEntry, error)
	GetDevices(ctx context.Context) ([]models.Device, error)
	ProbeStreams(ctx context.Context) (models.StreamList, string, error)
}

// Result is the outcome of one run.
type Result struct {
	Entities []*CameraEntity
	// Candidates and Bound are counted per source.
	Candidates map[SourceKind]int
	Bound      map[SourceKind]int
	// StreamServer is the go2rtc endpoint used, if any answered.
	StreamServer string
	NVR          *NVR
	// CatalogError is set when the entity states could not be fetched.
	CatalogError error
	// Failed marks the sources whose query failed.
	Failed map[SourceKind]bool
	// SourceErrors holds every degraded failure, in run order.
	SourceErrors []error
}

// Discovered is the number of catalog entities.
func (r *Result) Discovered() int { return len(r.Entities) }

// Resolved is the number of entities with a stream URL.
func (r *Result) Resolved() int {
	n := 0
	for _, e := range r.Entities {
		if e.Bound() {
			n++
		}
	}
	return n
}

// Unresolved is Discovered minus Resolved.
func (r *Result) Unresolved() int { return r.Discovered() - r.Resolved() }

// Discoverer runs discovery against a Platform.
type Discoverer struct {
	platform Platform
	tables   Tables
	log      *slog.Logger
}

func New(platform Platform, tables Tables, log *slog.Logger) *Discoverer {
	return &Discoverer{
		platform: platform,
		tables:   tables,
		log:      logging.Component(log, "discovery"),
	}
}

// Run performs one full discovery. It never fails: every source error is
// logged, recorded in the result and treated as "no candidates".
func (d *Discoverer) Run(ctx context.Context, filter Filter) *Result {
	res := &Result{
		Candidates: make(map[SourceKind]int),
		Bound:      make(map[SourceKind]int),
		Failed:     make(map[SourceKind]bool),
	}

	res.Entities = d.catalog(ctx, filter, res)
	d.log.Info("found camera entities", "count", len(res.Entities), "filters", len(filter))

	for _, kind := range PassOrder {
		var candidates []StreamCandidate
		switch kind {
		case SourceStreamServer:
			candidates = d.streamServerCandidates(ctx, res)
		case SourceNVRIntegration:
			candidates = d.nvrCandidates(ctx, res)
		case SourceEntityAttribute:
			d.log.Info("checking camera entity attributes")
			candidates = AttributeCandidates(res.Entities, d.tables)
		}
		res.Candidates[kind] = len(candidates)

		for _, b := range ResolvePass(res.Entities, candidates, d.tables.CameraPrefix) {
			res.Bound[kind]++
			d.log.Info("matched stream",
				"source", kind.String(),
				"candidate", b.Candidate.Key,
				"entity_id", b.Entity.ID,
				"url", logging.TruncateURL(b.Candidate.URL, 50))
		}
	}

	d.log.Info("discovery complete",
		"cameras", res.Discovered(),
		"resolved", res.Resolved(),
		"unresolved", res.Unresolved())
	return res
}

func (d *Discoverer) catalog(ctx context.Context, filter Filter, res *Result) []*CameraEntity {
	states, err := d.platform.GetStates(ctx)
	if err != nil {
		res.CatalogError = err
		res.SourceErrors = append(res.SourceErrors, err)
		d.log.Error("could not fetch entity states, continuing with an empty catalog", "error", err)
		return []*CameraEntity{}
	}
	return BuildCatalog(states, filter, d.tables)
}

func (d *Discoverer) streamServerCandidates(ctx context.Context, res *Result) []StreamCandidate {
	d.log.Info("checking go2rtc streams")
	streams, url, err := d.platform.ProbeStreams(ctx)
	if err != nil {
		d.degraded(res, SourceStreamServer, err)
		return nil
	}
	res.StreamServer = url
	d.log.Info("found go2rtc", "endpoint", url, "streams", len(streams))

	candidates := StreamServerCandidates(streams, d.tables)
	for _, c := range candidates {
		d.log.Debug("go2rtc stream", "name", c.Key, "url", logging.TruncateURL(c.URL, 50))
	}
	return candidates
}

func (d *Discoverer) nvrCandidates(ctx context.Context, res *Result) []StreamCandidate {
	d.log.Info("checking UniFi Protect integration")
	entries, err := d.platform.GetConfigEntries(ctx)
	if err != nil {
		d.degraded(res, SourceNVRIntegration, err)
		return nil
	}

	nvr, err := FindNVR(entries, d.tables)
	if errors.Is(err, errs.ErrNVRNotConfigured) {
		d.log.Info("UniFi Protect integration not found")
		return nil
	}
	if err != nil {
		d.degraded(res, SourceNVRIntegration, err)
		return nil
	}
	res.NVR = &nvr
	d.log.Info("found UniFi Protect NVR", "host", nvr.Host, "port", nvr.Port)

	devices, err := d.platform.GetDevices(ctx)
	if err != nil {
		d.degraded(res, SourceNVRIntegration, err)
		return nil
	}

	candidates := NVRCandidates(nvr, devices, d.tables)
	for _, c := range candidates {
		d.log.Debug("UniFi camera", "name", c.Key, "url", c.URL)
	}
	return candidates
}

func (d *Discoverer) degraded(res *Result, source SourceKind, err error) {
	res.Failed[source] = true
	res.SourceErrors = append(res.SourceErrors, err)

	msg := "source unavailable, continuing without it"
	if !errs.IsDegraded(err) {
		msg = "source returned unusable data, continuing without it"
	}
	d.log.Warn(msg, "source", source.String(), "class", errs.Classify(err).String(), "error", err)
}
