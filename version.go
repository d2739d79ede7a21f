package formcheck

// Version is the formcheck release.
const Version = "0.3.0"
