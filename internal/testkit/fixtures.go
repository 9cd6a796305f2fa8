package testkit

// Фикстуры — BSV в том виде, в каком его выдаёт msc: эскейпнутые
// параметрические имена, `___input` методы, обёртки функций и mkTopLevel___.

// CoreDesign covers registers, vectors of registers and submodules, a BVI
// black box under a submodule, structs, enums, synonyms and Maybe.
const CoreDesign = `import Vector::*;

// Types
typedef struct { Bit#(4) op; Bool valid; Bit#(8) data; } Req deriving (Bits, Eq, FShow);

typedef enum { Idle, Busy, Done } State deriving (Bits, Eq, FShow);

typedef Bit#(16) Word;

typedef struct {
    Req req;
    Maybe#(Word) resp;
    State st;
} Entry deriving (Bits, Eq, FShow);

interface Ext;
    method Bit#(8) rdata;
    method Action wdata(Bit#(8) v);
endinterface

import "BVI" ext =
module mkExt(Ext);
    default_clock clk(CLK);
    method rdata rdata;
    method wdata(wdata) enable(wdata_en);
    schedule (rdata, wdata) CF (rdata, wdata);
endmodule

interface Counter;
    method Word getCount;
    method Action inc___input(Bool value);
endinterface

module mkCounter(Counter);
    Reg#(Word) count <- mkReg(0);
    Ext ext <- mkExt;
    Wire#(Bool) inc <- mkDWire(False);

    (* no_implicit_conditions, fire_when_enabled *)
    rule tick;
        if (inc) count <= count + 1;
    endrule

    method Word getCount = count;
    method Action inc___input(Bool value);
        inc <= value;
    endmethod
endmodule

interface Top;
    method Entry peek;
    method Action push___input(Req value);
    method Action clear;
endinterface

module mkTop(Top);
    Reg#(Entry) head <- mkRegU;
    RegU#(State) st <- mkRegU;
    Vector#(2, Reg#(Bit#(4))) v <- replicateM(mkReg(0));
    Vector#(2, Counter) ctrs <- replicateM(mkCounter);
    Counter c <- mkCounter;
    Wire#(Req) pushW <- mkBypassWire;

    (* no_implicit_conditions, fire_when_enabled *)
    rule step;
        let x <- c.getCount;
        head <= Entry { req: pushW, resp: tagged Invalid, st: st };
    endrule

    method Entry peek = head;
    method Action push___input(Req value);
        pushW <= value;
    endmethod
    method Action clear;
        st <= Idle;
    endmethod
endmodule
`

// FunctionDesign is a top-level function with its synthesis wrapper.
const FunctionDesign = `typedef struct { Bit#(3) hi; Bit#(5) lo; } Pair deriving (Bits, Eq, FShow);

function Pair split(Bit#(8) x) = Pair { hi: x[7:5], lo: x[4:0] };

interface Split___ ;
  (* prefix="_", result = "out" *)
  method Pair fn(Bit#(8) x);
endinterface

module mksplit ( Split___ );
  method Pair fn(Bit#(8) x) = split (x);
endmodule
`

// WrapperDesign is a parametric top level behind mkTopLevel___.
const WrapperDesign = `typedef struct { Bit#(8) addr; Bool wr; } Cmd deriving (Bits, Eq, FShow);

interface \Buf#(8) ;
    method Cmd first;
    method Action enq___input(Cmd value);
endinterface

module \mkBuf#(8) (\Buf#(8) );
    Reg#(Cmd) slot <- mkRegU;
    Reg#(Bool) full <- mkReg(False);
    Wire#(Cmd) enqW <- mkBypassWire;

    (* no_implicit_conditions, fire_when_enabled *)
    rule doEnq;
        slot <= enqW;
        full <= True;
    endrule

    method Cmd first = slot;
    method Action enq___input(Cmd value);
        enqW <= value;
    endmethod
endmodule

// Top-level wrapper module
module mkTopLevel___( \Buf#(8) );
  \Buf#(8) res <- \mkBuf#(8) ;
  return res;
endmodule
`

// ParametricFunctionDesign is a parametric function behind mkTopLevel___.
const ParametricFunctionDesign = `function Bit#(4) \inc#(4) (Bit#(4) x) = x + 1;

interface \Inc___#(4) ;
  (* prefix="_", result = "out" *)
  method Bit#(4) fn(Bit#(4) x);
endinterface

module \mkinc#(4) ( \Inc___#(4) );
  method Bit#(4) fn(Bit#(4) x) = \inc#(4) (x);
endmodule

// Top-level wrapper module
module mkTopLevel___( \Inc___#(4) );
  \Inc___#(4) res <- \mkinc#(4) ;
  return res;
endmodule
`

// UnresolvedDesign references a type nobody declares and a struct built on it.
const UnresolvedDesign = `typedef struct { Mystery m; Bit#(2) tag; } Blob deriving (Bits, Eq);

interface Box;
    method Blob get;
    method Mystery raw;
endinterface

module mkBox(Box);
    Reg#(Blob) b <- mkRegU;
    method Blob get = b;
    method Mystery raw = b.m;
endmodule
`
