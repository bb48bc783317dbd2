// Package whisper wraps the external speech-recognition model.
//
// The Service builds a CLI invocation from the model size, language hint,
// device, and decoding options, then parses the JSON the model writes into
// a transcript.Transcript. The Prober decides between accelerated and CPU
// inference. The Pool caches loaded models by size for one run so watch
// mode does not pay the load cost per file; its Loader seam lets tests
// substitute stub models.
package whisper
