package domain

// DefaultVoice is used when a synthesis request omits the voice name.
const DefaultVoice = "en-US-JennyMultilingualNeural"

// AudioContentType is the MIME type of synthesized audio responses.
const AudioContentType = "audio/wav"
