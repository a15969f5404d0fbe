// Package export renders a timeline model as a vault of interlinked
// Markdown notes.
//
// Every live item becomes <label>.md. Each item type gets an index page
// _<type>.md listing its items by date, __Index.md links the type pages,
// and __Narrative.md lays out the narrative outline as nested headings.
//
// Example item note:
//
//	---
//	label: Aspirin synthesized
//	aliases:
//	    - Aspirin
//	type: Event
//	date: "1933-02-06"
//	time: "22:41:00"
//	tags:
//	    - Nobel_prize
//	---
//
//	---
//
//	Felix reports the result.
//
//	---
//
//	- **When** : Monday 6 February 1933 22:41
//	- **Lasts** : 14 minutes
//
//	- **Participant** : [[Alice]]
//
// Existing files are renamed to <name>.bak before they are overwritten.
package export
