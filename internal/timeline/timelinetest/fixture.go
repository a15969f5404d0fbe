// Package timelinetest provides a small Aeon project for tests.
package timelinetest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gorewood/aeon3md/internal/timeline"
)

// Item UIDs of the fixture project.
const (
	Aspirin   = "ev-aspirin"
	IdesStorm = "ev-storm-ides"
	LateStorm = "ev-storm-late"
	Alice     = "ch-alice"
	Ghost     = "ch-ghost"
	Bob       = "ch-bob"
	Chapter   = "nf-chapter"

	EventType     = "type-event"
	CharacterType = "type-character"
	ChapterType   = "type-chapter"
)

// ProjectJSON is the payload of the fixture project. Ghost is deleted; the
// two storms share a label; the outline root is not an item.
const ProjectJSON = `{
	"fileVersion": "3.2.1",
	"core": {
		"definitions": {
			"calendar": {
				"eras": [
					{"name": "BC", "shortName": "BC", "isBackwards": true},
					{"name": "AD", "shortName": "AD", "isBackwards": false}
				],
				"hoursInDay": 24,
				"months": [
					{"name": "January", "shortName": "Jan", "normalDuration": 31, "leapDuration": 31},
					{"name": "February", "shortName": "Feb", "normalDuration": 28, "leapDuration": 29},
					{"name": "March", "shortName": "Mar", "normalDuration": 31, "leapDuration": 31}
				],
				"weekdays": [
					{"name": "Sunday", "shortName": "Sun"},
					{"name": "Monday", "shortName": "Mon"},
					{"name": "Tuesday", "shortName": "Tue"},
					{"name": "Wednesday", "shortName": "Wed"},
					{"name": "Thursday", "shortName": "Thu"},
					{"name": "Friday", "shortName": "Fri"},
					{"name": "Saturday", "shortName": "Sat"}
				]
			},
			"types": {
				"byId": {
					"type-event": {"label": "Event", "isNarrativeFolder": false},
					"type-character": {"label": " Character ", "isNarrativeFolder": false},
					"type-chapter": {"label": "Chapter", "isNarrativeFolder": true}
				}
			},
			"references": {
				"byId": {
					"ref-participant": {"label": "Participant"}
				}
			},
			"properties": {
				"byId": {
					"prop-status": {
						"label": "Status",
						"allowed": {
							"enum-open": {"label": "Open"},
							"enum-closed": {"label": "Closed"}
						}
					},
					"prop-notes": {"label": "Notes", "allowed": {}}
				}
			}
		},
		"data": {
			"tags": {
				"tag-nobel": "Nobel prize",
				"tag-chem": "Chemistry"
			},
			"itemsById": {
				"ev-aspirin": {
					"label": "Aspirin synthesized",
					"shortLabel": "Aspirin",
					"summary": "Felix reports the result.\n\nBayer files a patent.",
					"displayId": "1",
					"type": "type-event",
					"tags": ["tag-nobel", "tag-chem", "tag-missing"],
					"propertyValues": {
						"prop-status": "enum-open",
						"prop-notes": "first line\nsecond line"
					}
				},
				"ev-storm-ides": {"label": "Storm", "type": "type-event", "tags": [], "propertyValues": {}},
				"ev-storm-late": {"label": "Storm ", "type": "type-event", "tags": [], "propertyValues": {}},
				"ch-alice": {"label": "Alice", "type": "type-character", "tags": [], "propertyValues": {}},
				"ch-ghost": {"label": "Ghost", "type": "type-character", "tags": [], "propertyValues": {}},
				"ch-bob": {
					"label": "Bob",
					"type": "type-character",
					"tags": [],
					"propertyValues": {"prop-status": ["enum-open", "enum-closed"], "prop-unknown": "x"}
				},
				"nf-chapter": {"label": "Chapter 1", "type": "type-chapter", "tags": [], "propertyValues": {}}
			},
			"itemDatesById": {
				"ev-aspirin": {
					"duration": {"days": 0, "hours": 0, "minutes": 14, "seconds": 0},
					"startDate": {"era": 1, "year": 1933, "month": 2, "day": 6, "weekday": 1, "hour": 22, "minute": 41, "second": 0, "timestamp": 60971179260}
				},
				"ev-storm-ides": {
					"duration": {"days": 1},
					"startDate": {"era": 0, "year": 44, "month": 3, "day": 15, "timestamp": -1000}
				}
			},
			"relationshipsById": {
				"rel-1": {"reference": "ref-participant", "object": "ev-aspirin"},
				"rel-2": {"reference": "ref-participant", "object": "ch-ghost"},
				"rel-3": {"reference": "ref-participant", "object": "ev-storm-ides"}
			},
			"superAndChildOrderById": {
				"nf-chapter": {"childOrder": ["ev-aspirin", "ch-ghost", "ev-storm-late"]}
			}
		}
	},
	"collection": {
		"allItemIds": {
			"ev-aspirin": true,
			"ev-storm-ides": true,
			"ev-storm-late": true,
			"ch-alice": true,
			"ch-ghost": false,
			"ch-bob": true,
			"nf-chapter": true
		},
		"relationshipIdsByItemId": {
			"ch-alice": {"rel-1": true, "rel-2": true, "rel-3": false}
		},
		"itemIdsByType": {
			"type-event": ["ev-aspirin", "ev-storm-ides", "ev-storm-late"],
			"type-character": ["ch-alice", "ch-ghost", "ch-bob"],
			"type-chapter": ["nf-chapter"]
		},
		"narrativeSacById": {
			"outline-root": {"super": null, "children": ["nf-chapter", "ch-ghost"]},
			"nf-chapter": {"super": "outline-root", "children": ["ev-aspirin", "ch-ghost"]},
			"ch-ghost": {"super": "outline-root", "children": ["ev-storm-ides"]},
			"ev-aspirin": {"super": "nf-chapter", "children": []},
			"ev-storm-ides": {"super": "ch-ghost", "children": []}
		}
	}
}`

// Envelope wraps a JSON payload the way Aeon stores it on disk.
func Envelope(payload string) []byte {
	data := []byte("AEON3\x00\x01\x8f\x02")
	data = append(data, payload...)
	return append(data, "\x00\xfe\xff trailer"...)
}

// WriteFile writes the fixture project to dir and returns its path.
func WriteFile(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "project.aeon")
	if err := os.WriteFile(path, Envelope(ProjectJSON), 0o600); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

// Model builds the fixture project.
func Model(t *testing.T) *timeline.Model {
	t.Helper()
	model, err := timeline.Build([]byte(ProjectJSON))
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return model
}
