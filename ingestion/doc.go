// Package ingestion provides pipeline orchestration for turning audio
// recordings into persisted knowledge.
//
// The Pipeline type manages the workflow for one document:
//   - Normalizing the source to a mono canonical-rate waveform
//   - Segmenting it into overlapping windows
//   - Transcribing segments concurrently with order preservation
//   - Merging, cleaning, and chunking the transcript
//   - Extracting entities and triples per chunk
//   - Persisting to the configured relational, vector, and graph stores
//
// Segment transcription, chunk extraction, and store writes fail soft:
// an error there is reported but does not abort the document. Transcript
// cleaning is the exception; a cleaning failure aborts before anything
// is persisted.
package ingestion
