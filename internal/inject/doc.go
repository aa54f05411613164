// Package inject interleaves invisible characters into sample text. It is a
// demonstration aid for exercising the detector and cleaner; nothing in
// detection or cleaning depends on it.
package inject
