package components

// DebugLineLimit bounds the debug panel history.
const DebugLineLimit = 200
