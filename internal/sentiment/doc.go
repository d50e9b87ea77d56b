// Package sentiment classifies sentiment scores for display.
//
// Two independent axes: BucketFor thresholds the score (-0.2 / 0.2) and picks a message;
// TierForWidth thresholds the bar width (10 / 40 / 70) and picks the emoji. Pure functions, no I/O.
package sentiment
