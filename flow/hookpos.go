package flow

import "github.com/sarchlab/flowsim/sim/hooking"

// HookPosPortPush marks a push leaving an output port. It fires before the
// receiver decides.
var HookPosPortPush = &hooking.HookPos{Name: "Port Push"}

// HookPosPortItemAccepted marks that the peer accepted an item pushed through
// an output port.
var HookPosPortItemAccepted = &hooking.HookPos{Name: "Port Item Accepted"}

// HookPosPortPull marks an item taken through an input port.
var HookPosPortPull = &hooking.HookPos{Name: "Port Pull"}

// HookPosPortDataAvailable marks that the peer output of an input port has
// announced data.
var HookPosPortDataAvailable = &hooking.HookPos{Name: "Port Data Available"}

// HookPosPulse is raised by pulse sources. It carries no payload.
var HookPosPulse = &hooking.HookPos{Name: "Pulse"}

// HookPosModelStart is raised by a Model when a run starts.
var HookPosModelStart = &hooking.HookPos{Name: "Model Start"}
