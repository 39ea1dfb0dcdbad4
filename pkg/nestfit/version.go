package nestfit

const Version = "v0.1.0"
