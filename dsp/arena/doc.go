// Package arena provides the fixed-capacity sample memory that backs every
// delay and allpass buffer of a processor.
//
// An Arena is reserved once, before any processor is initialized. Buffers are
// carved from it by bump allocation during an explicit initialization phase
// and are never resized or freed individually. Sealing the arena ends the
// initialization phase; any later carve fails.
package arena
