package alignment

// alignScript force-aligns a plain transcript against a WAV file and writes
// {"words": [{"word", "start", "end"}], "duration"} JSON. Words WhisperX
// cannot place (digits, symbols) are written with null times.
const alignScript = `
import json
import sys

import whisperx


def main():
    if len(sys.argv) < 6:
        raise SystemExit("usage: <audio_path> <transcript_path> <output_json> <language> <device> [model]")
    audio_path, transcript_path, output_path, language, device = sys.argv[1:6]
    model_name = sys.argv[6] if len(sys.argv) > 6 and sys.argv[6] else None
    language = (language or "en").strip() or "en"

    with open(transcript_path, "r", encoding="utf-8") as handle:
        text = " ".join(handle.read().split())
    if not text:
        raise SystemExit("empty transcript")

    audio = whisperx.load_audio(audio_path)
    duration = len(audio) / whisperx.audio.SAMPLE_RATE
    model, metadata = whisperx.load_align_model(
        language_code=language, device=device, model_name=model_name
    )
    aligned = whisperx.align(
        [{"text": text, "start": 0.0, "end": duration}],
        model,
        metadata,
        audio,
        device,
        return_char_alignments=False,
    )

    words = []
    for segment in aligned.get("segments", []):
        for word in segment.get("words", []):
            words.append(
                {"word": word.get("word", ""), "start": word.get("start"), "end": word.get("end")}
            )
    if not words:
        raise SystemExit("no aligned words produced")

    with open(output_path, "w", encoding="utf-8") as handle:
        json.dump({"words": words, "duration": duration}, handle)


if __name__ == "__main__":
    main()
`
