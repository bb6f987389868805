package version

// Current is the released version of air-assist, without a leading "v".
const Current = "0.3.0"
