// Package modem turns a byte payload into the FSK tone sequence a LiveShell
// decodes from its audio input.
//
// Every byte is sent 8N1 (start bit 0, eight data bits MSB first, stop bit 1)
// between runs of idle mark bits, followed by a CRC-16/CCITT of the payload.
// Each bit lasts SamplesPerBit samples of either the mark tone (bit 1,
// sampleRate/4) or the space tone (bit 0, sampleRate/8). Both tones complete a
// whole number of cycles per bit, so consecutive bits join without a phase
// jump. The modulated frame is repeated RepeatCount times back to back.
package modem
